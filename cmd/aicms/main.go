// Command aicms is a terminal client for the AI CMS: a chat view and a content grid.
//
// Build information is injected with
//
//	-ldflags "-X github.com/diogo/aicms/internal/commands.Version=... -X github.com/diogo/aicms/internal/commands.BuildTime=..."
package main

import "github.com/diogo/aicms/internal/commands"

func main() {
	commands.Execute()
}
