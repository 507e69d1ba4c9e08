package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youzi-corp/pos-client/internal/auth"
	"github.com/youzi-corp/pos-client/internal/mockapi"
	"github.com/youzi-corp/pos-client/pkg/format"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:     "login <email>",
	Short:   "Inicia sesión contra el backend",
	Example: "posclient login admin@youzi.co.id",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := loginPassword
		if password == "" {
			var err error
			password, err = app.Term.readLine("Password: ")
			if err != nil {
				return err
			}
		}
		return app.Auth.Login(cmd.Context(), args[0], password)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Cierra la sesión (pide confirmación)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.Auth.RestoreSession(cmd.Context())
		return app.Auth.Logout()
	},
}

var openCmd = &cobra.Command{
	Use:     "open <page>",
	Short:   "Abre una página del dashboard",
	Example: "posclient open products",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app.Auth.RestoreSession(cmd.Context())
		if err := app.Router.GoTo(cmd.Context(), args[0]); err != nil {
			return err
		}
		renderPage(args[0])
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Muestra la sesión activa",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.Auth.RestoreSession(cmd.Context()) != auth.StateLoggedIn {
			fmt.Println("Tidak ada sesi aktif")
			return nil
		}
		u := app.Auth.CurrentUser()
		fmt.Printf("%s <%s>\n", u.FullName, u.Email)
		fmt.Printf("Role: %s (%s)\n", u.RoleTitle(), u.Department)
		fmt.Printf("Limit transaksi: %s\n", format.Rupiah(u.TransactionLimit))
		return nil
	},
}

var mockserverAddr string

var mockserverCmd = &cobra.Command{
	Use:   "mockserver",
	Short: "Sirve el backend mock del protocolo de acciones",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := mockapi.New(mockapi.Config{JWTSecret: "offline-secret", Logger: app.Log})
		return srv.Listen(mockserverAddr)
	},
}

// renderPage vuelca la vista de las páginas con datos propios.
func renderPage(name string) {
	switch name {
	case "dashboard":
		v := app.Dashboard.View()
		fmt.Printf("Produk: %d | Penjualan: %s | Stok rendah: %d | Segera expired: %d\n",
			v.TotalProducts, v.TotalSales, v.LowStock, v.ExpiringSoon)
	case "products":
		v := app.Products.View()
		for _, p := range v.Products {
			fmt.Printf("%-22s %-24s %-10s stok=%-4d %s\n",
				p.SKU, p.Name, p.Category, p.CurrentStock, format.Rupiah(p.SellPrice))
		}
		fmt.Printf("%d produk\n", v.Count)
	}
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (se pregunta si se omite)")
	mockserverCmd.Flags().StringVar(&mockserverAddr, "addr", offlineAddr, "dirección de escucha")
}
