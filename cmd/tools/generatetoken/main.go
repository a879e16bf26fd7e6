package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ecopontos/ecopontos-api/pkg/security"
	"github.com/golang-jwt/jwt/v5"
)

func main() {
	var (
		accountID   string
		accountType string
		name        string
		verified    bool
		duration    time.Duration
	)

	flag.StringVar(&accountID, "account_id", "", "ID da conta (usuário ou mercado)")
	flag.StringVar(&accountType, "account_type", "user", "Tipo da conta (user, market)")
	flag.StringVar(&name, "name", "", "Nome da conta")
	flag.BoolVar(&verified, "verified", true, "Conta verificada")
	flag.DurationVar(&duration, "duration", 24*time.Hour, "Validade do token")
	flag.Parse()

	if accountID == "" {
		fmt.Println("Erro: o ID da conta não pode ser vazio.")
		fmt.Println("Uso: go run ./cmd/tools/generatetoken -account_id=<ID da conta>")
		os.Exit(1)
	}

	if accountType != "user" && accountType != "market" {
		fmt.Printf("Erro: tipo de conta inválido: %s (use user ou market)\n", accountType)
		os.Exit(1)
	}

	secretKey := security.GetJWTSecret()
	if len(secretKey) == 0 {
		fmt.Println("Erro: nenhum segredo JWT configurado.")
		fmt.Println("Configure JWT_SECRET_KEY ou ECO_AUTH_JWT_SECRET_KEY ou defina auth.jwtsecret no config.yaml")
		os.Exit(1)
	}

	expireTime := time.Now().Add(duration)
	claims := &security.Claims{
		AccountID:   accountID,
		AccountType: accountType,
		Name:        name,
		Verified:    verified,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expireTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		fmt.Printf("Erro ao gerar token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nToken JWT gerado:")
	fmt.Println("------------------------------------------")
	fmt.Println(tokenString)
	fmt.Println("------------------------------------------")
	fmt.Printf("\nDetalhes do token:\n")
	fmt.Printf("ID da conta:   %s\n", accountID)
	fmt.Printf("Tipo da conta: %s\n", accountType)
	fmt.Printf("Expira em:     %s\n", expireTime.Format(time.RFC3339))
	fmt.Println("\nUse este token no cabeçalho Authorization:")
	fmt.Printf("Authorization: Bearer %s\n", tokenString)
}
