package main

import (
	"flag"
	"fmt"
)

type versionCmd struct{ r *root }

func (v *versionCmd) Run() error {
	fmt.Fprintf(stdout, "%s version %s\n", v.r.program, version)
	if commit != "" {
		fmt.Fprintf(stdout, "commit %s\n", commit)
	}
	if date != "" {
		fmt.Fprintf(stdout, "built %s\n", date)
	}
	return nil
}

func (v *versionCmd) Program() string        { return v.r.program + " version" }
func (v *versionCmd) FlagSet() *flag.FlagSet { return nil }
