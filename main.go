package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hapinus/booksync/config"
	"github.com/hapinus/booksync/fetch"
	"github.com/hapinus/booksync/log"
	"github.com/hapinus/booksync/record"
	"github.com/hapinus/booksync/store"
	"github.com/hapinus/booksync/store/db"
	"github.com/hapinus/booksync/worker"
)

var (
	configFile string

	rootCmd = &cobra.Command{
		Use:           "booksync",
		Short:         "Booksync keeps a flat ISBN record file and a book database in step",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if configFile != "" {
				_, err = config.ParseFile(configFile)
			} else {
				_, err = config.GetConfig()
			}
			if err != nil {
				return err
			}
			log.Logger = log.NewLogger()
			return nil
		},
	}

	fetchCmd = &cobra.Command{
		Use:   "fetch",
		Short: "Fetch metadata for pending ISBN keys into the record file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Opts.ValidateFetch(); err != nil {
				return err
			}

			records := record.NewStore(config.Opts.BookFile)
			client := fetch.NewClient(
				config.Opts.APIBaseURL,
				config.Opts.APIKey,
				time.Duration(config.Opts.FetchTimeout)*time.Second,
			)

			w := worker.NewFetchWorker(records, client)
			return w.Run(cmd.Context())
		},
	}

	syncCmd = &cobra.Command{
		Use:   "sync",
		Short: "Synchronize updated records into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Opts.ValidateSync(); err != nil {
				return err
			}

			dbx, err := db.NewDB(config.Opts.DSN)
			if err != nil {
				return err
			}
			defer dbx.Close()

			if err := db.Migrate(cmd.Context(), dbx); err != nil {
				return err
			}

			s := store.NewStore(dbx)
			if err := s.Ping(); err != nil {
				log.Error("database is not reachable", zap.Error(err))
				return err
			}

			records := record.NewStore(config.Opts.BookFile)
			w := worker.NewSyncWorker(records, s)
			return w.Run()
		},
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config file")
	rootCmd.AddCommand(fetchCmd, syncCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if log.Logger != nil {
		log.Logger.Sync()
	}
}
