package logging

import (
	"log"
	"os"

	"github.com/alapha23/aws-content-moderation-with-nova-and-guardrails/version"
)

func init() {
	log.SetOutput(os.Stdout)
	log.SetPrefix("[" + version.AppName + "] ")
	log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds)

	log.Println("Version:", version.Revision)
}
