// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CrawX/go-imap-epafi/config"
	"github.com/CrawX/go-imap-epafi/crawler"
	"github.com/CrawX/go-imap-epafi/directory"
	"github.com/CrawX/go-imap-epafi/ignorelist"
	"github.com/CrawX/go-imap-epafi/imapconnection"
	"github.com/CrawX/go-imap-epafi/log"
	"github.com/CrawX/go-imap-epafi/persistence"
	"github.com/CrawX/go-imap-epafi/registry"
	"github.com/CrawX/go-imap-epafi/scanner"
	"github.com/CrawX/go-imap-epafi/viewer"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	configFile string
	configDir  string
	plain      bool
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "epafi",
		Short: "Find mail addresses that are neither in the crm nor on the ignore list",
		Run: func(cmd *cobra.Command, args []string) {
			crawl(opts)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Config file (default $HOME/.epafi/config.toml)")
	rootCmd.PersistentFlags().StringVar(&opts.configDir, "configdir", "", "Directory relative store paths are resolved against (default directory of the config file)")

	crawlCmd := &cobra.Command{
		Use:   "crawl",
		Short: "Scan the mailboxes and classify unknown addresses interactively",
		Run: func(cmd *cobra.Command, args []string) {
			crawl(opts)
		},
	}
	crawlCmd.Flags().BoolVar(&opts.plain, "plain", false, "Do not highlight unknown addresses")

	keptCmd := &cobra.Command{
		Use:   "kept",
		Short: "Print every address kept so far, one per line",
		Run: func(cmd *cobra.Command, args []string) {
			kept(opts)
		},
	}

	rootCmd.AddCommand(crawlCmd, keptCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(opts *options, logger *logrus.Logger) *config.Config {
	configFile := opts.configFile
	if len(configFile) == 0 {
		home, err := os.UserHomeDir()
		if err != nil {
			logger.WithField("error", err).Fatal("Could not determine home directory")
		}
		configFile = filepath.Join(home, ".epafi", "config.toml")
	}

	configDir := opts.configDir
	if len(configDir) == 0 {
		configDir = filepath.Dir(configFile)
	}

	conf, err := config.ReadConfig(configFile, configDir)
	if err != nil {
		logger.WithFields(logrus.Fields{"error": err, "file": configFile}).Fatal("Could not load config")
	}
	for _, key := range conf.Undecoded {
		logger.WithField("key", key).Warn("Unknown config key")
	}

	if conf.Loglevel != nil {
		log.SetLogLevel(*conf.Loglevel)
	}

	return conf
}

func crawl(opts *options) {
	log.InitLogging("info")
	logger := log.Logger(log.LOG_MAIN)
	conf := loadConfig(opts, logger)

	dir, err := directory.NewClient(conf.Crm.BaseUrl)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not start directory client")
	}
	err = dir.Login(conf.Crm.Login, conf.Crm.Password)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not login to crm")
	}

	reg := registry.NewRegistry(ignorelist.New(conf.Store.IgnoreFile))
	err = reg.Hydrate(dir)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not load known addresses")
	}

	configs := []crawler.ConfigFunc{}
	if opts.plain {
		configs = append(configs, crawler.Plain())
	}
	if len(conf.Store.Journal) > 0 {
		p, err := persistence.NewPersistence(conf.Store.Journal)
		if err != nil {
			logger.WithField("error", err).Fatal("Could not open journal")
		}
		defer p.Close()
		configs = append(configs, crawler.Journal(p))
	} else {
		logger.Info("Journal disabled, decisions are not recorded")
	}

	connOpts := []imapconnection.ConnectionOption{}
	if conf.Imap.Compress {
		connOpts = append(connOpts, imapconnection.Compress())
	}
	if conf.Imap.InsecureSkipVerify {
		logger.Warn("TLS certificate verification disabled")
		connOpts = append(connOpts, imapconnection.InsecureSkipVerify())
	}
	imapConn, err := imapconnection.NewImapConnection(conf.Imap.Server, conf.Imap.Login, conf.Imap.Password, connOpts...)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not start imap connector")
	}
	defer imapConn.Close()

	v, err := viewer.NewViewer(conf.Viewer.Command, conf.Viewer.TmpFile)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not set up viewer")
	}

	c, err := crawler.NewCrawler(reg, scanner.NewScanner(imapConn, conf.Imap.MaxRetries), v, os.Stdin, configs...)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not start crawler")
	}

	logger.WithFields(logrus.Fields{"pattern": conf.Imap.Pattern, "since": conf.Imap.Since, "keep": reg.KeepCount(), "ignore": reg.IgnoreCount()}).Info("Crawling mailboxes")
	err = c.Run(conf.Pattern(), conf.Since())
	if err != nil {
		// deferred cleanup is skipped by Fatal
		imapConn.Close()
		logger.WithField("error", err).Fatal("Crawling failed")
	}
}

func kept(opts *options) {
	log.InitLogging("info")
	logger := log.Logger(log.LOG_MAIN)
	conf := loadConfig(opts, logger)

	if len(conf.Store.Journal) == 0 {
		logger.Fatal("Journal disabled in config, no decisions recorded")
	}

	p, err := persistence.NewPersistence(conf.Store.Journal)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not open journal")
	}
	defer p.Close()

	addrs, err := p.KeptAddresses()
	if err != nil {
		logger.WithField("error", err).Fatal("Could not read kept addresses")
	}
	for _, a := range addrs {
		fmt.Println(a)
	}
}
