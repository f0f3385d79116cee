// Package utils provides a collection of helper functions for common tasks,
// such as file handling, path expansion, type conversion, and regex matching.
package utils
