// cmd/client/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/your-org/tableside/internal/config"
	"github.com/your-org/tableside/internal/domain/cart"
	"github.com/your-org/tableside/internal/domain/menu"
	"github.com/your-org/tableside/internal/domain/order"
	"github.com/your-org/tableside/internal/domain/session"
	"github.com/your-org/tableside/internal/pkg/api"
	"github.com/your-org/tableside/internal/pkg/logger"
)

func main() {
	tableID := flag.String("table", "", "table id to bind (as printed on the table code)")
	showBill := flag.Bool("bill", false, "print the table's running bill and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg)

	if *tableID == "" {
		// Accept a path-style argument too, e.g. /mesa/12/pedido
		if flag.NArg() > 0 {
			if derived, ok := session.TableIDFromPath(flag.Arg(0)); ok {
				*tableID = derived
			}
		}
	}
	if *tableID == "" {
		log.Fatal("A table id is required (-table or a /mesa/<id> path argument)")
	}

	store, closeStore, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to open local storage: %v", err)
	}
	defer closeStore()

	backend := api.NewClient(cfg, appLogger)

	sessions := session.NewStore(backend, cfg.Session.RecoveryCooldown, appLogger)
	carts := cart.NewStore(store, appLogger)
	menus := menu.NewService(backend, appLogger)
	orders := order.NewService(backend, carts, appLogger)

	ctx := context.Background()

	sessions.SetTableID(*tableID)
	carts.SetTable(ctx, *tableID)

	if err := sessions.EnsureSession(ctx); err != nil {
		appLogger.WithError(err).Fatal("Could not bind a session to the table")
	}

	sessionID, _ := sessions.SessionID()

	if *showBill {
		printBill(ctx, orders, sessionID)
		return
	}

	loaded, err := menus.Load(ctx, *tableID)
	if err != nil {
		appLogger.WithError(err).Fatal("Could not load the menu")
	}

	fmt.Printf("Mesa %s — %d products on the menu\n", *tableID, len(loaded.Products))
	for _, product := range loaded.Products {
		fmt.Printf("  %-30s R$ %.2f\n", product.Name, product.Price)
	}
	if carts.TotalItems() > 0 {
		fmt.Printf("Cart: %d items, R$ %.2f\n", carts.TotalItems(), carts.TotalPrice())
	}
}

func printBill(ctx context.Context, orders *order.Service, sessionID string) {
	summary, err := orders.Summary(ctx, sessionID)
	if err != nil {
		if api.IsNotFound(err) {
			fmt.Println("This table's session no longer exists.")
			os.Exit(1)
		}
		log.Fatalf("Could not load the bill: %v", err)
	}

	for _, past := range summary.Orders {
		fmt.Printf("Order %s (%s)\n", past.ID, past.Status)
		for _, item := range past.Items {
			fmt.Printf("  %dx %-26s R$ %.2f\n", item.Quantity, item.ProductName, item.TotalPrice)
		}
	}
	fmt.Printf("Session total: R$ %.2f\n", summary.SessionTotal)
}
