// Command tablepad normalizes the pipe-tables of Markdown documents.
package main

import "github.com/gaurav-prasanna/tablepad/cmd"

func main() {
	cmd.Execute()
}
