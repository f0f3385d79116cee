// Package prompt reads answers to interactive questions line by line.
// Input is read on a background goroutine so a pending question can be
// abandoned when the context is canceled.
package prompt
