package app

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/tube-grabber/internal/config"
	"github.com/oshokin/tube-grabber/internal/logger"
)

// ExecuteConfigInitCommand writes the default configuration file and prints its path.
// An empty filename selects the default configuration file.
func ExecuteConfigInitCommand(ctx context.Context, filename string, out io.Writer) error {
	path, err := config.WriteDefaultConfig(filename)
	if err != nil {
		return err
	}

	logger.Debugf(ctx, "Default configuration written to %s", path)

	_, err = fmt.Fprintf(out, "Configuration written to %s\n", path)

	return err
}
