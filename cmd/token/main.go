// Command token emite un JWT para operar la API cuando JWT_SECRET está definido.
//
//	token -sub ana -role admin -company 1
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/ledger-api/pkg/config"
	"github.com/jhoicas/ledger-api/pkg/jwt"
)

func main() {
	sub := flag.String("sub", "", "subject del token")
	role := flag.String("role", jwt.RoleOperator, "rol: admin | operator")
	company := flag.Int64("company", 0, "alcance de empresa (0 = todas)")
	flag.Parse()

	if *sub == "" {
		fmt.Fprintln(os.Stderr, "falta -sub")
		os.Exit(2)
	}
	if *role != jwt.RoleAdmin && *role != jwt.RoleOperator {
		fmt.Fprintf(os.Stderr, "rol inválido %q\n", *role)
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *sub, *company, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generar token:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
