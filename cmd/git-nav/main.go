package main

import "github.com/raphi011/gitnav/internal/cli"

func main() {
	cli.Main(newRootCmd(newApp(cli.OSStreams())))
}
