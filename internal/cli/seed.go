package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ssssstella/locallibrary/internal/config"
	"github.com/ssssstella/locallibrary/internal/database"
	"github.com/ssssstella/locallibrary/internal/database/authors"
	"github.com/ssssstella/locallibrary/internal/database/bookinstances"
	"github.com/ssssstella/locallibrary/internal/database/books"
	"github.com/ssssstella/locallibrary/internal/entities"
	"github.com/ssssstella/locallibrary/internal/logging"
)

// SeedCommand fills an empty catalog with sample authors, books and copies.
type SeedCommand struct {
	Driver       string
	DatabasePath string
	DSN          string
	Verbose      bool
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.Driver, "driver", config.DriverSQLite, "Database driver (sqlite or postgres)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the sqlite database file")
	fs.StringVar(&cmd.DSN, "dsn", "", "Postgres connection string (with -driver postgres)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Populate the catalog with sample authors, books and book copies.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s seed\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed -db ./data/catalog.db\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed -driver postgres -dsn 'host=localhost dbname=library'\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Driver == config.DriverPostgres && cmd.DSN == "" {
		fs.Usage()
		return fmt.Errorf("dsn is required for the postgres driver")
	}

	return nil
}

func (cmd *SeedCommand) Run() error {
	level := "info"
	if cmd.Verbose {
		level = "debug"
	}
	logging.Init("development", level)

	db, err := database.NewDatabase(config.Database{
		Driver: cmd.Driver,
		Path:   cmd.DatabasePath,
		DSN:    cmd.DSN,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	seeder := Seeder{
		Authors:   authors.NewRepository(db.DB),
		Books:     books.NewRepository(db.DB),
		Instances: bookinstances.NewRepository(db.DB),
	}

	result, err := seeder.Seed(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d authors, %d books and %d book copies\n", result.Authors, result.Books, result.Instances)
	return nil
}

// Seeder writes the sample catalog through the repositories.
type Seeder struct {
	Authors   *authors.Repository
	Books     *books.Repository
	Instances *bookinstances.Repository
}

// SeedResult counts the records created by Seed.
type SeedResult struct {
	Authors   int
	Books     int
	Instances int
}

type seedBook struct {
	title   string
	summary string
	isbn    string
	author  int
}

type seedCopy struct {
	book    int
	imprint string
	status  entities.BookInstanceStatus
	dueIn   time.Duration // zero means no due date
}

func day(year int, month time.Month, d int) *time.Time {
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	return &t
}

var seedAuthors = []entities.Author{
	{FirstName: "Patrick", FamilyName: "Rothfuss", DateOfBirth: day(1973, time.June, 6)},
	{FirstName: "Ben", FamilyName: "Bova", DateOfBirth: day(1932, time.November, 8)},
	{FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: day(1920, time.January, 2), DateOfDeath: day(1992, time.April, 6)},
	{FirstName: "Bob", FamilyName: "Billings"},
	{FirstName: "Jim", FamilyName: "Jones", DateOfBirth: day(1971, time.December, 16)},
}

var seedBooks = []seedBook{
	{"The Name of the Wind (The Kingkiller Chronicle, #1)", "A young man grows to be the most notorious magician his world has ever seen.", "9781473211896", 0},
	{"The Wise Man's Fear (The Kingkiller Chronicle, #2)", "Kvothe searches for answers about the Amyr and the Chandrian.", "9788401352836", 0},
	{"The Slow Regard of Silent Things (Kingkiller Chronicle)", "Deep below the University lies the Underthing.", "9780756411336", 0},
	{"Apes and Angels", "Humankind's first interstellar expedition races a wave of deadly radiation.", "9780765379528", 1},
	{"Death Wave", "Humanity must reckon with a death wave from the galactic core.", "9780765379504", 1},
	{"Test Book 1", "Summary of test book 1", "ISBN111111", 4},
	{"Test Book 2", "Summary of test book 2", "ISBN222222", 4},
}

var seedCopies = []seedCopy{
	{0, "London Gollancz, 2014.", entities.StatusAvailable, 0},
	{1, "Gollancz, 2011.", entities.StatusLoaned, 14 * 24 * time.Hour},
	{2, "Gollancz, 2015.", entities.StatusAvailable, 0},
	{3, "New York Tom Doherty Associates, 2016.", entities.StatusAvailable, 0},
	{3, "New York Tom Doherty Associates, 2016.", entities.StatusAvailable, 0},
	{3, "New York Tom Doherty Associates, 2016.", entities.StatusAvailable, 0},
	{4, "New York, NY Tom Doherty Associates, LLC, 2015.", entities.StatusAvailable, 0},
	{4, "New York, NY Tom Doherty Associates, LLC, 2015.", entities.StatusMaintenance, 0},
	{4, "New York, NY Tom Doherty Associates, LLC, 2015.", entities.StatusLoaned, -3 * 24 * time.Hour},
	{0, "Imprint XXX2", entities.StatusReserved, 0},
	{1, "Imprint XXX3", entities.StatusLoaned, 7 * 24 * time.Hour},
}

// Seed creates the sample authors, books and copies. It does not check for
// existing records; running it twice creates duplicates.
func (s Seeder) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult
	now := time.Now().UTC().Truncate(24 * time.Hour)

	authorIDs := make([]string, len(seedAuthors))
	for i := range seedAuthors {
		author := seedAuthors[i]
		if err := s.Authors.CreateAuthor(ctx, &author); err != nil {
			return result, fmt.Errorf("create author %q: %w", author.FamilyName, err)
		}
		authorIDs[i] = author.ID
		result.Authors++
		log.Debug().Str("id", author.ID).Str("name", author.Name()).Msg("Seeded author")
	}

	bookIDs := make([]string, len(seedBooks))
	for i, b := range seedBooks {
		book := entities.Book{
			Title:    b.title,
			Summary:  b.summary,
			ISBN:     b.isbn,
			AuthorID: authorIDs[b.author],
		}
		if err := s.Books.CreateBook(ctx, &book); err != nil {
			return result, fmt.Errorf("create book %q: %w", b.title, err)
		}
		bookIDs[i] = book.ID
		result.Books++
		log.Debug().Str("id", book.ID).Str("title", book.Title).Msg("Seeded book")
	}

	for _, c := range seedCopies {
		instance := entities.BookInstance{
			BookID:  bookIDs[c.book],
			Imprint: c.imprint,
			Status:  c.status,
		}
		if c.dueIn != 0 {
			due := now.Add(c.dueIn)
			instance.DueBack = &due
		}
		if err := s.Instances.CreateBookInstance(ctx, &instance); err != nil {
			return result, fmt.Errorf("create book copy %q: %w", c.imprint, err)
		}
		result.Instances++
	}

	log.Info().
		Int("authors", result.Authors).
		Int("books", result.Books).
		Int("book_copies", result.Instances).
		Msg("Catalog seeded")
	return result, nil
}
