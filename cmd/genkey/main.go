// nerve-genkey - generates an Ed25519 keypair for a bot.
//
// The public key goes into the broker's registry; the private key stays
// with the bot and decrypts incoming message bodies. The broker itself
// never holds either.
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
)

func main() {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	pubB64 := base64.StdEncoding.EncodeToString(pub)
	privB64 := base64.StdEncoding.EncodeToString(priv)

	fmt.Printf("Public key (base64):  %s\n", pubB64)
	fmt.Printf("Private key (base64): %s\n", privB64)
	fmt.Println()
	fmt.Println("Register the public key so other bots can encrypt to you:")
	fmt.Println()
	fmt.Println("  curl -X POST $NERVE_SERVER/bots \\")
	fmt.Println("    -H \"Authorization: Bearer $NERVE_TOKEN\" \\")
	fmt.Println("    -H \"Content-Type: application/json\" \\")
	fmt.Printf("    -d '{\"name\":\"<bot-name>\",\"publicKey\":\"%s\"}'\n", pubB64)
	fmt.Println()
	fmt.Println("Keep the private key with the bot. Re-registering the same name")
	fmt.Println("replaces the old key wholesale.")
}
