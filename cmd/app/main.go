package main

import (
	"context"
	"flag"
	"log"

	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/ai"
	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/config"
	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/guard"
	_ "github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/logging" // always set up logging
	"github.com/joho/godotenv"
)

func main() {
	text := flag.String("text", "", "Text to check. Empty skips the text checks.")
	imagePath := flag.String("image", "", "Path to a local jpg/jpeg/png image to check. Empty skips the image checks.")
	flag.Parse()

	// A .env file is optional. Values already in the environment win.
	_ = godotenv.Load()

	cnf, err := config.NewInstanceConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	api, err := ai.NewBedrockRuntime(ctx, cnf)
	if err != nil {
		log.Fatal(err)
	}

	service, err := ai.NewGuardrailModeration(cnf, api)
	if err != nil {
		log.Fatal(err)
	}
	judge, err := ai.NewNovaJudge(cnf, api)
	if err != nil {
		log.Fatal(err)
	}
	gate := guard.NewGate(service, judge)

	var textArg *string
	if len(*text) > 0 {
		textArg = text
	}
	var imageArg *string
	if len(*imagePath) > 0 {
		imageArg = imagePath
	}

	decision, err := gate.Guard(ctx, textArg, imageArg)
	if err != nil {
		log.Fatal(err)
	}
	log.Println(decision)
}
