package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/artefact/buzz-dashboard/internal/config"
	"github.com/artefact/buzz-dashboard/internal/fixtures"
	"github.com/artefact/buzz-dashboard/internal/library"
	"github.com/artefact/buzz-dashboard/internal/storage"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	convertIn := flag.String("convert", "", "comments fixture with legacy map-shaped tag_details to rewrite")
	convertOut := flag.String("out", "comments_restructured.json", "output path for -convert")
	flag.Parse()

	if *convertIn != "" {
		if err := convert(*convertIn, *convertOut); err != nil {
			log.Fatalf("❌ Conversion failed: %v", err)
		}
		return
	}

	fmt.Println("🔍 Buzz Dashboard - Fixture Source Check")
	fmt.Println("========================================")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logrus.SetLevel(logrus.WarnLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("\n📡 Checking fixture storage...")
	fmt.Println(strings.Repeat("-", 40))

	store, err := storage.FromConfig(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize %s storage: %v", cfg.FixtureSource, err)
	}

	lib := library.NewService(store, cfg.CommentsFixture)
	fmt.Printf("🔸 Loading %s from %s... ", cfg.CommentsFixture, store.Name())
	if err := lib.Load(ctx); err != nil {
		fmt.Printf("❌ ERROR: %v\n", err)
		return
	}
	fmt.Printf("✅ SUCCESS (%d comments)\n", len(lib.Comments()))

	checkEmbedded()

	fmt.Println("\n🧪 Sample searches...")
	fmt.Println(strings.Repeat("-", 40))

	checkSearch(lib, "All comments", library.DefaultCriteria())
	for _, theme := range []string{"story", "ux", "risk"} {
		criteria := library.Reduce(library.DefaultCriteria(), library.SetTheme{Value: theme})
		checkSearch(lib, "Theme "+theme, criteria)
	}
	checkSearch(lib, "Last 7 days", library.Reduce(library.DefaultCriteria(), library.SetDateRange{Value: "7days"}))
	checkSearch(lib, "Negative sentiment", library.Reduce(library.DefaultCriteria(), library.SetSentiment{Value: "Negative"}))

	fmt.Println("\n✅ Fixture check completed!")
	fmt.Println("\n💡 Next steps:")
	fmt.Println("   • Set FIXTURE_SOURCE to file, http or azure to check another source")
	fmt.Println("   • Run the dashboard API with: go run ./cmd/dashboard")
}

// convert rewrites a comments fixture so every tag_details uses the theme -> tag -> metrics tree
func convert(in, out string) error {
	fmt.Printf("🔄 Converting %s... ", in)

	store, err := storage.NewDirStorage(filepath.Dir(in))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	data, err := store.Retrieve(ctx, filepath.Base(in))
	if err != nil {
		return err
	}

	normalized, n, err := library.NormalizeComments(data)
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, normalized, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Printf("✅ SUCCESS (%d comments written to %s)\n", n, out)
	return nil
}

func checkEmbedded() {
	fmt.Print("🔸 Decoding embedded dashboard fixtures... ")

	rows, err := fixtures.SummaryRows()
	if err != nil {
		fmt.Printf("❌ ERROR: %v\n", err)
		return
	}
	breakdowns, err := fixtures.TagBreakdowns()
	if err != nil {
		fmt.Printf("❌ ERROR: %v\n", err)
		return
	}

	fmt.Printf("✅ SUCCESS (%d summary rows, %d tag breakdowns)\n", len(rows), len(breakdowns))
}

func checkSearch(lib *library.Service, name string, criteria library.Criteria) {
	result := lib.Search(criteria)
	fmt.Printf("🔸 %s: %d comments\n", name, result.Total)

	if result.Total > 0 {
		sample := result.Comments[0]
		fmt.Printf("   📝 Sample: %s on %s: \"%s\"\n", sample.User, sample.Platform, truncate(sample.Content, 60))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
