package main

import (
	"context"
	"flag"
	"fmt"
	"sort"

	"bvox-ledger-go/internal/common"
	"bvox-ledger-go/internal/config"
	"bvox-ledger-go/internal/models"

	"go.uber.org/zap"
)

type balanceStats struct {
	totalUsers        int
	totalBalances     int
	usersWithBalances int
}

func sortedBalances(user models.User) []models.UserBalance {
	balances := make([]models.UserBalance, 0, len(user.Balances))
	for asset, amount := range user.Balances {
		balances = append(balances, models.UserBalance{Asset: asset, Balance: amount})
	}
	sort.Slice(balances, func(i, j int) bool {
		return balances[i].Asset < balances[j].Asset
	})
	return balances
}

func printBalances(balances []models.UserBalance) {
	for i, balance := range balances {
		symbol := common.BoxPrefix(i == len(balances)-1)
		fmt.Printf("%s %-15s: %20s\n", symbol, balance.Asset, balance.Balance.String())
	}
}

func printUserHeader(user models.User, balanceCount int) {
	fmt.Printf("\n┌─ User: %s (%s)\n", user.Username, user.Email)
	fmt.Printf("│  ID: %s\n", user.Id)
	fmt.Printf("│  Wallet: %s\n", user.WalletAddress)
	fmt.Printf("│  Assets: %d\n", balanceCount)
	common.PrintBoxSeparator(78)
}

func processUsers(users []models.User) balanceStats {
	stats := balanceStats{}

	for _, user := range users {
		stats.totalUsers++

		balances := sortedBalances(user)
		if len(balances) == 0 {
			continue
		}

		printUserHeader(user, len(balances))
		printBalances(balances)

		stats.usersWithBalances++
		stats.totalBalances += len(balances)
	}

	return stats
}

func filterByWallet(users []models.User, wallet string) []models.User {
	if wallet == "" {
		return users
	}
	filtered := make([]models.User, 0, 1)
	for _, user := range users {
		if user.WalletAddress == wallet {
			filtered = append(filtered, user)
		}
	}
	return filtered
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	walletFlag := flag.String("wallet", "", "Filter by specific wallet address (optional)")
	flag.Parse()

	logger.Info("Starting balance query")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ledgerSvc, err := common.InitializeLedger(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize ledger", zap.Error(err))
	}
	defer ledgerSvc.Close()

	users, err := ledgerSvc.ListUsers(ctx)
	if err != nil {
		logger.Fatal("Failed to load users", zap.Error(err))
	}
	users = filterByWallet(users, *walletFlag)
	sort.Slice(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})

	common.PrintHeader("USER BALANCE REPORT", common.DefaultWidth)

	stats := processUsers(users)

	summary := fmt.Sprintf("SUMMARY: %d users with balances (%d total balances across %d users queried)",
		stats.usersWithBalances, stats.totalBalances, stats.totalUsers)
	common.PrintFooter(summary, common.DefaultWidth)

	logger.Info("Balance query completed",
		zap.Int("users_queried", stats.totalUsers),
		zap.Int("users_with_balances", stats.usersWithBalances),
		zap.Int("total_balances", stats.totalBalances))
}
