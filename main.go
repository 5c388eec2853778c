package main

import "github.com/insightdelivered/statement-categorizer/internal/commands"

func main() {
	commands.Execute()
}
