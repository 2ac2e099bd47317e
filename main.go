package main

import "github.com/NoushadBug/stt-typer-enhanced-wayland-supported/cmd"

func main() {
	cmd.Execute()
}
