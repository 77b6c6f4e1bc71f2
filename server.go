package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/savaki/dynastore"

	"github.com/weirdtangent/myaws"
)

func setupLogging() context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	// alter the caller() return to only include the last directory
	zerolog.CallerMarshalFunc = func(file string, line int) string {
		parts := strings.Split(file, "/")
		if len(parts) > 1 {
			return strings.Join(parts[len(parts)-2:], "/") + ":" + strconv.Itoa(line)
		}
		return file + ":" + strconv.Itoa(line)
	}
	pgmPath := strings.Split(os.Args[0], `/`)
	logTag := "pairwatch"
	if len(pgmPath) > 1 {
		logTag = pgmPath[len(pgmPath)-1]
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if debugging {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := log.With().Str("@tag", logTag).Caller().Logger()
	ctx := log.WithContext(context.Background())

	return ctx
}

func setupSessionsStore(ctx context.Context, awssess *session.Session, cfg *Config) (*securecookie.SecureCookie, *dynastore.Store) {
	awsConfig, err := myaws.AWSConfig(cfg.AWS.Region)
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to find AWS region configuration")
	}

	// connect to Dynamo
	ddb, err := myaws.DDBConnect(awssess)
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to connect to DDB")
	}

	// Cookie setup for sessionID ------------------------------------------------
	cookieAuthKey, err := myaws.AWSGetSecretKV(awssess, cfg.AWS.ProfileName, "cookie_auth_key")
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to retrieve secret")
	}

	cookieEncryptionKey, err := myaws.AWSGetSecretKV(awssess, cfg.AWS.ProfileName, "cookie_encryption_key")
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to retrieve secret")
	}

	var hashKey = []byte(*cookieAuthKey)
	var blockKey = []byte(*cookieEncryptionKey)
	var secureCookie = securecookie.New(hashKey, blockKey)

	// Initialize session manager and configure the session lifetime -------------
	store, err := dynastore.New(
		dynastore.AWSConfig(awsConfig),
		dynastore.DynamoDB(ddb),
		dynastore.TableName(cfg.AWS.SessionTable),
		dynastore.Secure(),
		dynastore.HTTPOnly(),
		dynastore.Domain(cfg.Server.Domain),
		dynastore.Path("/"),
		dynastore.MaxAge(365*24*60*60),
		dynastore.Codecs(secureCookie),
	)
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to setup session management")
	}

	return secureCookie, store
}

func getSecrets(ctx context.Context, awssess *session.Session, cfg *Config) map[string]string {
	var secrets = make(map[string]string)

	// get yhfinance api access key and host
	yf_api_access_key, err := myaws.AWSGetSecretKV(awssess, cfg.AWS.ProfileName, "yhfinance_rapidapi_key")
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).
			Msg("failed to get YHFinance API key")
	}
	secrets["yhfinance_rapidapi_key"] = *yf_api_access_key

	yf_api_access_host, err := myaws.AWSGetSecretKV(awssess, cfg.AWS.ProfileName, "yhfinance_rapidapi_host")
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).
			Msg("failed to get YHFinance API host")
	}
	secrets["yhfinance_rapidapi_host"] = *yf_api_access_host

	// get fmp api access key for annual fundamental ratios
	fmp_api_key, err := myaws.AWSGetSecretKV(awssess, cfg.AWS.ProfileName, "fmp_api_key")
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).
			Msg("failed to get FMP API key")
	}
	secrets["fmp_api_key"] = *fmp_api_key

	return secrets
}

func startHTTPServer(ctx context.Context, deps *Dependencies) {
	// setup middleware chain
	router := mux.NewRouter()

	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static/"))))
	router.PathPrefix("/favicon.ico").Handler(http.FileServer(http.Dir("static/images")))

	router.HandleFunc("/ping", pingHandler()).Methods("GET")
	router.HandleFunc("/internal/cspviolations", JSONReportHandler(deps)).Methods("POST")
	router.HandleFunc("/api/v1/{endpoint}", apiV1Handler(deps)).Methods("GET")
	router.Handle("/metrics", promhttp.Handler())

	router.HandleFunc("/compare/{symbolA}/{symbolB}", compareHandler(deps)).Methods("GET")
	router.HandleFunc("/search", searchHandler(deps)).Methods("GET", "POST")
	router.HandleFunc("/about", staticPageHandler(deps, "about")).Methods("GET")
	router.HandleFunc("/terms", staticPageHandler(deps, "terms")).Methods("GET")
	router.HandleFunc("/privacy", staticPageHandler(deps, "privacy")).Methods("GET")

	router.HandleFunc("/", homeHandler(deps)).Methods("GET")

	// middleware chain
	chainedMux1 := withSession(deps.cookieStore, router) // deepest level, last to run
	chainedMux2 := withAddHeader(chainedMux1)
	chainedMux3 := withLogging(chainedMux2) // outer level, first to run

	// starting up web service ---------------------------------------------------
	zerolog.Ctx(ctx).Info().Int("port", deps.cfg.Server.Port).Msg("started serving requests")

	// startup or die
	server := &http.Server{
		Handler:      chainedMux3,
		Addr:         ":" + strconv.Itoa(deps.cfg.Server.Port),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("ended abnormally")
	} else {
		zerolog.Ctx(ctx).Info().Msg("stopped serving requests")
	}
}
