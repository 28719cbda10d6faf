package main

import (
	"context"
	"log"
	"os"

	"storefront/internal/config"
	"storefront/internal/db"
	accountrepo "storefront/internal/repository/account"
	categoryrepo "storefront/internal/repository/category"
	logisticsrepo "storefront/internal/repository/logistics"
	productrepo "storefront/internal/repository/product"
	tokenrepo "storefront/internal/repository/token"
	"storefront/internal/seed"
	accountsvc "storefront/internal/service/account"
)

func main() {
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, config.DSNFromEnv())
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	err = seed.Apply(ctx, seed.Stores{
		Accounts:   accountsvc.New(accountrepo.NewPostgres(pool, logger), tokenrepo.NewPostgres(pool)),
		Categories: categoryrepo.NewPostgres(pool),
		Products:   productrepo.NewPostgres(pool, logger),
		Logistics:  logisticsrepo.NewPostgres(pool, logger),
	})
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied; demo seller %s / %s", seed.DemoEmail, seed.DemoPassword)
}
