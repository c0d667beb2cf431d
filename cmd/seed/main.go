// Package main provides the seed command-line tool that writes a deterministic sample dataset.
// The four CSV files use a mix of header spellings so that every run also exercises the column normalizer.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"influencerdash/pkg/utils"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
)

// Output file names, matching the configuration defaults.
const (
	fileInfluencers = "influencers.csv"
	filePosts       = "posts.csv"
	fileTracking    = "tracking_data.csv"
	filePayouts     = "payouts.csv"
)

var errExists = errors.New("file already exists (use -force to overwrite)")

// Config holds the seeder configuration.
type Config struct {
	OutDir      string
	Influencers int
	Seed        uint64
	Dirty       bool
	Force       bool
}

func logInfo(msg string) {
	fmt.Printf("%s[SEEDER]%s %s\n", colorGreen, colorReset, msg)
}

func logWarn(msg string) {
	fmt.Printf("%s[SEEDER]%s %s\n", colorYellow, colorReset, msg)
}

func logError(msg string) {
	fmt.Printf("%s[SEEDER]%s %s\n", colorRed, colorReset, msg)
}

func main() {
	cfg := parseConfig()

	if cfg.Influencers < 1 {
		logError("-influencers must be at least 1")
		os.Exit(1)
	}

	logInfo(fmt.Sprintf("Generating %d influencers (seed %d)...", cfg.Influencers, cfg.Seed))

	tables := generate(cfg)

	if cfg.Dirty {
		logWarn("Adding data quality problems (unresolved ids, bad dates, bad numbers)")
	}

	if err := writeTables(cfg.OutDir, tables, cfg.Force); err != nil {
		logError(fmt.Sprintf("Seeding failed: %v", err))
		os.Exit(1)
	}

	for _, name := range tableOrder {
		logInfo(fmt.Sprintf("Wrote %s (%d rows)", filepath.Join(cfg.OutDir, name), len(tables[name])-1))
	}

	logInfo("Seeding complete!")
}

func parseConfig() Config {
	outDir := flag.String("out", "./data", "Directory to write the CSV files to")
	influencers := flag.Int("influencers", 12, "Number of influencers to generate")
	seed := flag.Uint64("seed", 42, "Random seed; the same seed always yields the same files")
	dirty := flag.Bool("dirty", false, "Include rows with data quality problems")
	force := flag.Bool("force", false, "Overwrite existing files")
	flag.Parse()

	return Config{
		OutDir:      *outDir,
		Influencers: *influencers,
		Seed:        *seed,
		Dirty:       *dirty,
		Force:       *force,
	}
}

var tableOrder = []string{fileInfluencers, filePosts, fileTracking, filePayouts}

var (
	firstNames = []string{"Asha", "Ravi", "Meera", "Kabir", "Priya", "Arjun", "Neha", "Vikram", "Isha", "Rohan", "Sana", "Dev"}
	lastNames  = []string{"Sharma", "Iyer", "Kapoor", "Nair", "Gupta", "Reddy", "Mehta", "Singh"}
	platforms  = []string{"Instagram", "YouTube", "Twitter"}
	categories = []string{"Fitness", "Nutrition", "Lifestyle", "Wellness"}
	genders    = []string{"Female", "Male"}
	campaigns  = []string{"Summer Shred", "Monsoon Immunity", "Festive Glow"}
	products   = []struct {
		name  string
		price int
	}{
		{"Whey Protein", 2499},
		{"Multivitamin", 699},
		{"Fish Oil", 899},
		{"Protein Bar", 149},
	}
)

var numbers = utils.NewNumberHelper()

var campaignStart = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

// generate builds the records of every file, header first. The output only
// depends on cfg.
func generate(cfg Config) map[string][][]string {
	r := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	influencers := [][]string{{"ID", "Name", "Category", "Gender", "Follower Count", "Platform"}}
	posts := [][]string{{"influencer_id", "platform", "post_date", "url", "caption", "reach", "likes", "comments"}}
	tracking := [][]string{{"source", "campaign", "influencer_id", "user_id", "product", "date", "orders", "revenue"}}
	payouts := [][]string{{"influencer_id", "basis", "rate", "orders", "payout_amount"}}

	user := 0

	for i := 1; i <= cfg.Influencers; i++ {
		id := strconv.Itoa(i)
		platform := platforms[r.IntN(len(platforms))]
		name := firstNames[(i-1)%len(firstNames)] + " " + lastNames[r.IntN(len(lastNames))]
		followers := 5000 + r.IntN(495)*1000

		influencers = append(influencers, []string{
			id, name, categories[r.IntN(len(categories))], genders[r.IntN(len(genders))], groupThousands(followers), platform,
		})

		postCount := 1 + r.IntN(4)
		for p := 0; p < postCount; p++ {
			reach := 1000 + r.IntN(200)*1000
			likes := reach * (1 + r.IntN(8)) / 100
			posts = append(posts, []string{
				id,
				platform,
				campaignStart.AddDate(0, 0, r.IntN(120)).Format(time.DateOnly),
				fmt.Sprintf("https://example.com/%s/%s/%d", platform, id, p+1),
				fmt.Sprintf("Post %d by %s", p+1, name),
				strconv.Itoa(reach),
				strconv.Itoa(likes),
				strconv.Itoa(likes / 10),
			})
		}

		totalOrders := 0

		rows := 2 + r.IntN(5)
		for t := 0; t < rows; t++ {
			product := products[r.IntN(len(products))]
			orders := 1 + r.IntN(10)
			totalOrders += orders
			user++

			date := campaignStart.AddDate(0, 0, r.IntN(120))
			dateText := date.Format(time.DateOnly)
			revenue := strconv.Itoa(orders * product.price)

			// Alternate export styles
			if t%3 == 2 {
				dateText = date.Format("01/02/2006")
				revenue = "₹" + groupThousands(orders*product.price) + ".00"
			}

			tracking = append(tracking, []string{
				platform,
				campaigns[r.IntN(len(campaigns))],
				id,
				fmt.Sprintf("U%05d", user),
				product.name,
				dateText,
				strconv.Itoa(orders),
				revenue,
			})
		}

		if r.IntN(2) == 0 {
			rate := 500 + r.IntN(45)*100
			payouts = append(payouts, []string{id, "post", strconv.Itoa(rate), strconv.Itoa(totalOrders), strconv.Itoa(rate * postCount)})
		} else {
			rate := 20 + r.IntN(18)*10
			payouts = append(payouts, []string{id, "order", strconv.Itoa(rate), strconv.Itoa(totalOrders), strconv.Itoa(rate * totalOrders)})
		}
	}

	if cfg.Dirty {
		ghost := strconv.Itoa(cfg.Influencers + 100)
		tracking = append(tracking,
			[]string{"instagram", campaigns[0], ghost, "U99999", products[0].name, "2025-05-01", "3", "7497"},
			[]string{"youtube", campaigns[1], "1", "U99998", products[1].name, "sometime in may", "two", "n/a"},
		)
		posts = append(posts, []string{ghost, "Instagram", "2025-05-02", "", "", "1000", "10", "1"})
		payouts = append(payouts, []string{ghost, "barter", "0", "", ""})
	}

	return map[string][][]string{
		fileInfluencers: influencers,
		filePosts:       posts,
		fileTracking:    tracking,
		filePayouts:     payouts,
	}
}

func groupThousands(n int) string {
	return numbers.Group(strconv.Itoa(n))
}

func writeTables(dir string, tables map[string][][]string, force bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	for _, name := range tableOrder {
		path := filepath.Join(dir, name)

		if !force {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s: %w", path, errExists)
			}
		}

		if err := writeCSV(path, tables[name]); err != nil {
			return err
		}
	}

	return nil
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return f.Close()
}
