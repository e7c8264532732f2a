package shell

import "slices"

// Command returns a copy of the configured command line.
// This is exported for testing purposes only.
func (d *Driver) Command() []string {
	return slices.Clone(d.command)
}
