package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/application/usecase"
	"github.com/jhoicas/pos-core/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-core/pkg/password"
)

var (
	staffUsername string
	staffPassword string
	staffRole     string
	staffStoreID  int64
	staffEmail    string
)

// staffCmd alta de personal desde la terminal.
var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "Gestionar personal de tienda",
}

var staffCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Crear un VENDEDOR o GERENTE",
	Long: `Crea un usuario de personal con su rol formal en una sola transacción.

Examples:
  posctl staff create --username vera --password 1234 --role VENDEDOR --store 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		hasher, err := password.New(e.cfg.Auth.Hasher, e.cfg.Auth.BcryptCost)
		if err != nil {
			return err
		}
		uc := usecase.NewUserUseCase(
			postgres.NewUserRepository(e.pool),
			postgres.NewRoleRepository(e.pool),
			postgres.NewTxRunner(e.pool),
			hasher, e.log,
		)
		in := staffRequest()
		out, err := uc.CreateStaffUser(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "usuario %s creado (id %d, rol %s)\n", out.Username, out.ID, staffRole)
		return nil
	},
}

func init() {
	f := staffCreateCmd.Flags()
	f.StringVar(&staffUsername, "username", "", "Nombre de usuario")
	f.StringVar(&staffPassword, "password", "", "Contraseña inicial")
	f.StringVar(&staffRole, "role", "VENDEDOR", "VENDEDOR o GERENTE")
	f.Int64Var(&staffStoreID, "store", 0, "ID de la tienda (0 = sin asignar)")
	f.StringVar(&staffEmail, "email", "", "Email")
	_ = staffCreateCmd.MarkFlagRequired("username")
	_ = staffCreateCmd.MarkFlagRequired("password")

	staffCmd.AddCommand(staffCreateCmd)
}

// staffRequest arma la entrada de alta a partir de los flags; los opcionales vacíos van como nil.
func staffRequest() dto.CreateStaffUserRequest {
	in := dto.CreateStaffUserRequest{
		Username: staffUsername,
		Password: staffPassword,
		Role:     staffRole,
	}
	if staffStoreID > 0 {
		id := staffStoreID
		in.StoreID = &id
	}
	if staffEmail != "" {
		email := staffEmail
		in.Email = &email
	}
	return in
}
