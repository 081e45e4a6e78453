package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/pos-core/internal/application/auth"
	"github.com/jhoicas/pos-core/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-core/pkg/password"
)

// bootstrapCmd crea el rol ADMIN y el usuario admin si la base está vacía.
var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Crear el administrador inicial",
	Long: `Garantiza el rol ADMIN y, si no existe ningún usuario, crea "admin" con AUTH_ADMIN_PASSWORD.
Es idempotente: sobre una base ya inicializada no escribe nada.`,
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
		uc := auth.NewAuthUseCase(
			postgres.NewUserRepository(e.pool),
			postgres.NewRoleRepository(e.pool),
			postgres.NewTxRunner(e.pool),
			hasher,
			auth.JWTConfig{},
			auth.Options{AdminPassword: e.cfg.Auth.AdminPassword},
			e.log, nil,
		)
		if err := uc.InitializeAdmin(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "bootstrap completado")
		return nil
	},
}
