// Command deptool-manpage writes the deptool man pages. With a directory
// argument it writes one page per command there, otherwise the root page
// goes to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/deptool/internal/cli"
	"github.com/arthur-debert/deptool/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "DEPTOOL",
		Section: "1",
		Source:  "deptool " + version.Version,
		Manual:  "deptool manual",
	}

	var err error
	if len(os.Args) > 1 {
		dir := os.Args[1]
		if err = os.MkdirAll(dir, 0755); err == nil {
			err = doc.GenManTree(rootCmd, header, dir)
		}
	} else {
		err = doc.GenMan(rootCmd, header, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
