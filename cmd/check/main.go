// nerve-check - inbox poller for nerve-cord bots.
//
// Run with no arguments between agent turns: it exits silently with
// status 0 when the inbox is empty, and prints pending messages as
// JSON when there is work to do.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/clawdbotatg/nerve-cord/clients/go/nervecord"
)

func main() {
	baseURL := os.Getenv("NERVE_SERVER")
	token := os.Getenv("NERVE_TOKEN")
	botName := os.Getenv("NERVE_BOTNAME")
	if botName == "" {
		fmt.Fprintln(os.Stderr, "NERVE_BOTNAME not set")
		os.Exit(1)
	}

	client := nervecord.NewClient(baseURL, token, botName)

	cmd := "pending"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "pending":
		msgs, err := client.Pending()
		exitOnError(err)
		if len(msgs) == 0 {
			return
		}
		printJSON(msgs)

	case "seen":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: nerve-check seen <message_id>")
			os.Exit(1)
		}
		msg, err := client.MarkSeen(os.Args[2])
		exitOnError(err)
		printJSON(msg)

	case "burn":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: nerve-check burn <message_id>")
			os.Exit(1)
		}
		msg, err := client.Burn(os.Args[2])
		exitOnError(err)
		printJSON(msg)

	case "heartbeat":
		version := os.Getenv("NERVE_VERSION")
		skillVersion := os.Getenv("NERVE_SKILL_VERSION")
		exitOnError(client.Heartbeat(version, skillVersion))

	case "key":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: nerve-check key <bot_name>")
			os.Exit(1)
		}
		key, err := client.BotKey(os.Args[2])
		exitOnError(err)
		fmt.Println(key)

	case "help", "--help", "-h":
		usage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`nerve-check - nerve-cord inbox poller

Usage: nerve-check [command]

Commands:
  pending             Print pending messages (default; silent when empty)
  seen <id>           Mark a message as seen
  burn <id>           Read and delete a message
  heartbeat           Send a heartbeat for this bot
  key <bot_name>      Print a bot's registered public key

Environment:
  NERVE_SERVER   Server URL (default: http://localhost:9999)
  NERVE_TOKEN    Bearer token
  NERVE_BOTNAME  This bot's name (required)`)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func printJSON(v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}
