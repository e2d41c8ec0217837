package main

import (
	"fmt"
	"os"

	"productivity-manager/internal/cli"
)

var version = "dev"

func main() {
	app := &cli.App{}
	root := cli.NewRootCmd(version, app)
	err := root.Execute()
	if cerr := app.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if app.Logger != nil {
		_ = app.Logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
