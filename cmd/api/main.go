package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/shiftdesk/core/cmd/api/commands"
)

// @title ShiftDesk API
// @version 1.0
// @description Hotel shift operations backend: per-role task schedules, recurring task tracking and handover notes

// @contact.name ShiftDesk Support
// @contact.url https://github.com/shiftdesk/core

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "shiftdesk",
		Short: "ShiftDesk API Server",
		Long:  `ShiftDesk is a hotel shift operations backend that serves per-role daily task schedules, tracks recurring task completions and carries handover notes between shifts.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewStaffCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
