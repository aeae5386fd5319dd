/*
Smtparseserver starts the smtparse HTTP parse service and begins listening
for requests.

Usage:

	smtparseserver [flags]

By default it listens on localhost:8080 and stores service account
credentials in a sqlite database file in the current directory. Cached parse
results are kept in a separate sqlite file when the config file's [cache]
section enables the cache.

The flags are:

	-v, --version
		Print the current version and exit.

	-l, --listen ADDRESS
		Listen on the given address. Defaults to the value of environment
		variable SMTPARSE_LISTEN_ADDRESS, then to the config file's
		[server] address, then to "localhost:8080".

	-s, --secret TOKEN_SECRET
		Secret used to sign bearer tokens. Defaults to the value of
		environment variable SMTPARSE_TOKEN_SECRET, then to the config
		file's [server] token_secret. If none of these is given, a random
		secret is generated and all tokens become invalid at shutdown.

	--db FILE
		Path to the sqlite database file holding service accounts. Defaults
		to "smtparse-accounts.db".

	-c, --config FILE
		Load server and cache settings from the given TOML config file.
*/
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/smtparse/internal/config"
	"github.com/dekarrin/smtparse/internal/parsecache"
	"github.com/dekarrin/smtparse/internal/version"
	"github.com/dekarrin/smtparse/server"
	"github.com/dekarrin/smtparse/server/api"
	"github.com/dekarrin/smtparse/server/dao/sqlite"
)

const (
	envListen = "SMTPARSE_LISTEN_ADDRESS"
	envSecret = "SMTPARSE_TOKEN_SECRET"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Print the current version and exit")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address")
	flagSecret  = pflag.StringP("secret", "s", "", "Secret used to sign bearer tokens")
	flagDB      = pflag.String("db", "smtparse-accounts.db", "Path to the sqlite accounts database")
	flagConfig  = pflag.StringP("config", "c", "", "Load server and cache settings from the given TOML config file")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		log.Fatalf("FATAL could not load config: %s", err)
	}

	listenAddr := *flagListen
	if listenAddr == "" {
		listenAddr = os.Getenv(envListen)
	}
	if listenAddr == "" {
		listenAddr = cfg.Server.Address
	}
	if listenAddr == "" {
		listenAddr = "localhost:8080"
	}

	secret := *flagSecret
	if secret == "" {
		secret = os.Getenv(envSecret)
	}
	if secret == "" {
		secret = cfg.Server.TokenSecret
	}
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			log.Fatalf("FATAL could not generate token secret: %s", err)
		}
		secret = hex.EncodeToString(buf)
		log.Printf("WARN  using generated token secret; all tokens issued will become invalid at shutdown")
	}

	accounts, err := sqlite.NewAccountsDBConn(*flagDB)
	if err != nil {
		log.Fatalf("FATAL could not open accounts database: %s", err)
	}
	defer accounts.Close()

	var cache *parsecache.Cache
	if cfg.Cache.Enabled {
		cache, err = parsecache.Open(cfg.Cache.File)
		if err != nil {
			log.Fatalf("FATAL could not open parse cache: %s", err)
		}
		defer cache.Close()
	}

	srv, err := server.New(accounts, cache, secret)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err)
	}

	if _, err := accounts.GetByName(context.Background(), "admin"); err == sqlite.ErrNotFound {
		hash, err := server.HashSecret("password")
		if err != nil {
			log.Fatalf("FATAL could not hash initial admin secret: %s", err)
		}
		if _, err := accounts.Create(context.Background(), "admin", hash); err != nil {
			log.Printf("ERROR could not create initial admin account: %v", err)
		} else {
			log.Printf("INFO  added initial admin account with secret 'password'")
		}
	}

	a := api.API{Backend: srv}
	router := http.NewServeMux()
	router.Handle(api.PathPrefix+"/", http.StripPrefix(api.PathPrefix, a.Router()))

	log.Printf("INFO  starting smtparse server %s on %s", version.Current, listenAddr)
	if err := http.ListenAndServe(listenAddr, router); err != nil {
		log.Fatalf("FATAL server exited: %s", err)
	}
}
