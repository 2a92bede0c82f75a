package main

import (
	"log"
	"net/http"
	"os"

	libHTTP "github.com/brigadecore/brigade-foundations/http"
	"github.com/brigadecore/brigade-foundations/signals"
	"github.com/brigadecore/brigade-foundations/version"
	"github.com/gorilla/mux"
	slackAPI "github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"github.com/bugzooka/slack-summary-gateway/gateway/internal/slack"
	libSlack "github.com/bugzooka/slack-summary-gateway/internal/slack"
)

func main() {

	log.Printf(
		"Starting Slack Summary Gateway -- version %s -- commit %s",
		version.Version(),
		version.Commit(),
	)

	var apiClient *slackAPI.Client
	var socketModeClient *socketmode.Client
	{
		botToken, appToken, err := slackClientConfig()
		if err != nil {
			log.Fatal(err)
		}
		apiClient = slackAPI.New(
			botToken,
			slackAPI.OptionAppLevelToken(appToken),
		)
		socketModeClient = socketmode.New(apiClient)
	}

	var slashCommandService slack.SlashCommandService
	{
		products, err := productConfigs()
		if err != nil {
			log.Fatal(err)
		}
		lookbackSeconds, err := defaultLookbackSeconds()
		if err != nil {
			log.Fatal(err)
		}
		slashCommandService, err = slack.NewSlashCommandService(
			libSlack.NewProductConfigStore(products),
			func(channelID string) (slack.MessageFetcher, error) {
				return slack.NewMessageFetcher(
					channelID,
					apiClient,
					log.New(os.Stderr, "summary ", log.LstdFlags),
				)
			},
			slack.NewGoroutineExecutor(),
			lookbackSeconds,
		)
		if err != nil {
			log.Fatal(err)
		}
	}

	var server libHTTP.Server
	{
		router := mux.NewRouter()
		router.StrictSlash(true)
		router.HandleFunc("/healthz", libHTTP.Healthz).Methods(http.MethodGet)
		serverConfig, err := serverConfig()
		if err != nil {
			log.Fatal(err)
		}
		server = libHTTP.NewServer(router, &serverConfig)
	}

	log.Println(
		newGateway(
			slack.NewSlashCommandHandler(slashCommandService, socketModeClient),
			server,
		).run(signals.Context()),
	)
}
