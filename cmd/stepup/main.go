package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/aebonlee/stepup-cloud/client"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.SetFlags(0)
		log.Fatal(describe(err))
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "stepup",
		Usage: "record study sessions, reading and activities in StepUp Cloud",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "API base URL",
				Value:   "http://localhost:5002",
				EnvVars: []string{"STEPUP_SERVER"},
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "session token printed by login or register",
				EnvVars: []string{"STEPUP_TOKEN"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "per-request timeout",
				Value: client.DefaultTimeout,
			},
			&cli.BoolFlag{
				Name:  "demo",
				Usage: "accept the offline demo account (test@sample.com / 1234)",
			},
		},
		Commands: []*cli.Command{
			authCommand("register", "create an account and print its token"),
			authCommand("login", "log in and print a session token"),
			{
				Name:  "logout",
				Usage: "revoke the current token",
				Action: func(c *cli.Context) error {
					return newClient(c).Logout(c.Context)
				},
			},
			{
				Name:  "study",
				Usage: "study sessions",
				Subcommands: []*cli.Command{
					{
						Name:  "add",
						Usage: "record a study session",
						Flags: []cli.Flag{
							dateFlag(),
							&cli.StringFlag{Name: "subject", Required: true},
							&cli.StringFlag{Name: "book"},
							&cli.IntFlag{Name: "minutes", Required: true},
						},
						Action: func(c *cli.Context) error {
							created, err := newClient(c).CreateStudyRecord(c.Context, client.StudyInput{
								Date:    c.String("date"),
								Subject: c.String("subject"),
								Book:    c.String("book"),
								Minutes: c.Int("minutes"),
							})
							return printCreated(created, err)
						},
					},
					{
						Name:  "list",
						Usage: "list study sessions, newest first",
						Action: func(c *cli.Context) error {
							recs, err := newClient(c).StudyRecords(c.Context)
							if err != nil {
								return err
							}
							w := table("DATE", "SUBJECT", "MINUTES", "BOOK")
							for _, r := range recs {
								fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.Date, r.Subject, r.Minutes, deref(r.Book))
							}
							return w.Flush()
						},
					},
				},
			},
			{
				Name:  "reading",
				Usage: "reading log",
				Subcommands: []*cli.Command{
					{
						Name:  "add",
						Usage: "record a book",
						Flags: []cli.Flag{
							dateFlag(),
							&cli.StringFlag{Name: "title", Required: true},
							&cli.StringFlag{Name: "review"},
							&cli.StringFlag{Name: "category"},
						},
						Action: func(c *cli.Context) error {
							created, err := newClient(c).CreateReadingRecord(c.Context, client.ReadingInput{
								Date:      c.String("date"),
								BookTitle: c.String("title"),
								Review:    c.String("review"),
								Category:  c.String("category"),
							})
							return printCreated(created, err)
						},
					},
					{
						Name:  "list",
						Usage: "list books, newest first",
						Action: func(c *cli.Context) error {
							recs, err := newClient(c).ReadingRecords(c.Context)
							if err != nil {
								return err
							}
							w := table("DATE", "TITLE", "CATEGORY", "REVIEW")
							for _, r := range recs {
								fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Date, r.BookTitle, deref(r.Category), deref(r.Review))
							}
							return w.Flush()
						},
					},
				},
			},
			{
				Name:  "activity",
				Usage: "awards and activities",
				Subcommands: []*cli.Command{
					{
						Name:  "add",
						Usage: "record an award or an activity",
						Flags: []cli.Flag{
							dateFlag(),
							&cli.StringFlag{Name: "title", Required: true},
							&cli.StringFlag{Name: "type", Value: "activity", Usage: "award or activity"},
							&cli.StringFlag{Name: "subject"},
							&cli.IntFlag{Name: "hours", Usage: "activities only"},
						},
						Action: func(c *cli.Context) error {
							created, err := newClient(c).CreateAwardActivity(c.Context, client.AwardActivityInput{
								Date:    c.String("date"),
								Title:   c.String("title"),
								Type:    c.String("type"),
								Subject: c.String("subject"),
								Hours:   c.Int("hours"),
							})
							return printCreated(created, err)
						},
					},
					{
						Name:  "list",
						Usage: "list awards and activities, newest first",
						Action: func(c *cli.Context) error {
							recs, err := newClient(c).AwardActivities(c.Context)
							if err != nil {
								return err
							}
							w := table("DATE", "TYPE", "TITLE", "SUBJECT", "HOURS")
							for _, r := range recs {
								hours := ""
								if r.Hours != nil {
									hours = fmt.Sprint(*r.Hours)
								}
								fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Date, r.Type, r.Title, deref(r.Subject), hours)
							}
							return w.Flush()
						},
					},
				},
			},
			{
				Name:  "stats",
				Usage: "statistics",
				Subcommands: []*cli.Command{
					{
						Name:  "study",
						Usage: "minutes per day, subject and week",
						Action: func(c *cli.Context) error {
							stats, err := newClient(c).StudyStats(c.Context)
							if err != nil {
								return err
							}
							w := table("GROUP", "KEY", "MINUTES")
							for _, d := range stats.Daily {
								fmt.Fprintf(w, "day\t%s\t%d\n", d.Date, d.TotalMinutes)
							}
							for _, s := range stats.Subjects {
								fmt.Fprintf(w, "subject\t%s\t%d\n", s.Subject, s.TotalMinutes)
							}
							for _, wk := range stats.Weekly {
								fmt.Fprintf(w, "week\t%s\t%d\n", wk.Week, wk.TotalMinutes)
							}
							return w.Flush()
						},
					},
					{
						Name:  "reading",
						Usage: "books per month and category",
						Action: func(c *cli.Context) error {
							stats, err := newClient(c).ReadingStats(c.Context)
							if err != nil {
								return err
							}
							w := table("GROUP", "KEY", "BOOKS")
							for _, m := range stats.Monthly {
								fmt.Fprintf(w, "month\t%s\t%d\n", m.Month, m.BookCount)
							}
							for _, cat := range stats.Categories {
								fmt.Fprintf(w, "category\t%s\t%d\n", orNone(cat.Category), cat.BookCount)
							}
							fmt.Fprintf(w, "reviews\t\t%d\n", stats.TotalReviews)
							return w.Flush()
						},
					},
				},
			},
			{
				Name:  "dashboard",
				Usage: "summary of everything recorded",
				Action: func(c *cli.Context) error {
					d, err := newClient(c).Dashboard(c.Context)
					if err != nil {
						return err
					}
					hours, minutes := d.StudyHours()
					fmt.Printf("Study time:  %dh %dm\n", hours, minutes)
					fmt.Printf("Books read:  %d (%d reviews)\n", d.TotalBooks, d.TotalReviews)
					fmt.Printf("Activities:  %d (%d awards)\n", d.TotalActivities, d.TotalAwards)
					return nil
				},
			},
			{
				Name:  "health",
				Usage: "check the server",
				Action: func(c *cli.Context) error {
					health, err := newClient(c).Health(c.Context)
					if health != nil {
						fmt.Printf("%s: %s (database %s, %s)\n", health.Status, health.Message, health.Database, health.Timestamp)
					}
					return err
				},
			},
		},
	}
}

func authCommand(name, usage string) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"STEPUP_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			api := newClient(c)
			var (
				session *client.Session
				err     error
			)
			if name == "register" {
				session, err = api.Register(c.Context, c.String("email"), c.String("password"))
			} else {
				session, err = api.Login(c.Context, c.String("email"), c.String("password"))
			}
			if err != nil {
				return err
			}
			if session.Demo {
				fmt.Fprintln(os.Stderr, "offline demo session; the server was not contacted")
			}
			fmt.Println(session.Token)
			return nil
		},
	}
}

func newClient(c *cli.Context) *client.Client {
	opts := []client.Option{
		client.WithTimeout(c.Duration("timeout")),
		client.WithToken(c.String("token")),
	}
	if c.Bool("demo") {
		opts = append(opts, client.WithDemoLogin())
	}
	return client.New(c.String("server"), opts...)
}

func dateFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "date",
		Usage: "YYYY-MM-DD",
		Value: time.Now().Format("2006-01-02"),
	}
}

func printCreated(created *client.Created, err error) error {
	if err != nil {
		return err
	}
	fmt.Printf("%s (id %d)\n", created.Message, created.ID)
	return nil
}

func table(headers ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	return w
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orNone(s *string) string {
	if s == nil {
		return "(none)"
	}
	return *s
}

// describe turns client errors into the messages shown to the user.
func describe(err error) string {
	switch {
	case client.IsUnauthorized(err):
		return "not logged in: run `stepup login` and pass the token with --token or STEPUP_TOKEN"
	case client.IsForbidden(err):
		return "session expired or revoked: log in again"
	}
	var netErr *client.NetworkError
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "the server did not answer in time; it may be starting up, try again shortly"
		}
		return "cannot reach the server: " + netErr.Err.Error()
	}
	return err.Error()
}
