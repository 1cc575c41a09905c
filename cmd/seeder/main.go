// Command seeder provisions the account tiers plus two well-known
// fixture users, one VIP and one PREMIUM, both with the password
// "test password".
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mlemos/userdir"
)

type fixture struct {
	name        string
	email       string
	accountType userdir.AccountType
}

var fixtures = []fixture{
	{name: "vip", email: "vip@test.com", accountType: userdir.AccountVIP},
	{name: "premium", email: "premium@test.com", accountType: userdir.AccountPremium},
}

const fixturePassword = "test password"

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		logger.Error("DB_URL is required")
		os.Exit(1)
	}

	db, err := userdir.OpenDB(dsn)
	if err != nil {
		logger.Error("unable to open credential store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	if err := userdir.InitSchema(ctx, db); err != nil {
		logger.Error("unable to initialize schema", "error", err)
		os.Exit(1)
	}

	hash, err := userdir.HashPassword(fixturePassword)
	if err != nil {
		logger.Error("unable to hash fixture password", "error", err)
		os.Exit(1)
	}

	users := userdir.NewUsersRepository(db)

	for _, f := range fixtures {
		if _, err := users.GetByEmail(ctx, f.email); err == nil {
			logger.Info("fixture already present", "email", f.email)
			continue
		}

		record := &userdir.User{
			Name:         f.name,
			Email:        f.email,
			PasswordHash: hash,
		}

		if err := users.Create(ctx, record, f.accountType); err != nil {
			logger.Error("unable to seed fixture", "email", f.email, "error", err)
			os.Exit(1)
		}

		logger.Info("seeded fixture", "email", f.email, "account_type", f.accountType)
	}
}
