package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/videolighter/videolighter/go/config"
	"github.com/videolighter/videolighter/go/db"
	"github.com/videolighter/videolighter/go/licensing"
)

// Issues a lifetime license by hand for each email argument, e.g. for
// giveaways or support cases. Goes through the same issuance path as the
// webhook so keys and idempotency behave identically.
func main() {
	if len(os.Args) <= 1 {
		log.Fatal("expected email")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gdb, err := db.Open(cfg.PostgresURL)
	if err != nil {
		log.Fatal(err)
	}

	issuer := &licensing.Issuer{
		DB:                gdb,
		Resolver:          &licensing.Resolver{DB: gdb},
		MonthlyProductID:  cfg.PolarProductProID,
		LifetimeProductID: cfg.PolarProductLifetimeID,
	}

	for _, email := range os.Args[1:] {
		result, err := issuer.ProcessOrderPaid(map[string]any{
			"customer_email": email,
			"id":             fmt.Sprintf("manual_%s", uuid.NewString()),
		})
		if err != nil {
			log.Fatalf("%s: %v", email, err)
		}
		if result.License != nil {
			result.License.Source = "manual"
			if res := gdb.Save(result.License); res.Error != nil {
				log.Fatalf("%s: %v", email, res.Error)
			}
		}

		fmt.Printf("%s\n", email)
		fmt.Printf("License key: %s\n", result.LicenseKey)
		fmt.Printf("\n")
	}
}
