// Command scorecard scores ten-pin bowling games from the command line and
// submits them to tenpin-server.
package main

func main() {
	Execute()
}
