package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var app *App

var rootCmd = &cobra.Command{
	Use:           "posclient",
	Short:         "Cliente de terminal del sistema de inventario Youzi Corp",
	Long:          "Cliente del backend de inventario/punto de venta Youzi Corp: sesión, navegación y consultas contra el protocolo de acciones.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		app, err = buildApp()
		return err
	},
}

// Execute punto de entrada del CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, openCmd, whoamiCmd, mockserverCmd)
}
