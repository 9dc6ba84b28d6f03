package nervecord

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"testing"
)

func generateTestKeypair(t *testing.T) (ed25519.PrivateKey, string) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	return priv, base64.StdEncoding.EncodeToString(pub)
}

func TestRoundTrip(t *testing.T) {
	crabPriv, crabPub := generateTestKeypair(t)

	ct, err := EncryptMessage("deploy finished, all green", crabPub)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := DecryptMessage(ct, crabPriv)
	if err != nil {
		t.Fatal(err)
	}
	if pt != "deploy finished, all green" {
		t.Fatalf("round trip mismatch: got %q", pt)
	}
}

func TestWireFormatStructure(t *testing.T) {
	_, priv, _ := ed25519.GenerateKey(rand.Reader)
	pubB64 := base64.StdEncoding.EncodeToString(priv.Public().(ed25519.PublicKey))

	ct, err := EncryptMessage("test", pubB64)
	if err != nil {
		t.Fatal(err)
	}
	wire, _ := base64.StdEncoding.DecodeString(ct)
	// 32 (eph pk) + 12 (nonce) + 4 (plaintext) + 16 (tag) = 64
	if len(wire) != 64 {
		t.Fatalf("expected wire length 64, got %d", len(wire))
	}
}

func TestDifferentCiphertexts(t *testing.T) {
	_, priv, _ := ed25519.GenerateKey(rand.Reader)
	pubB64 := base64.StdEncoding.EncodeToString(priv.Public().(ed25519.PublicKey))

	ct1, _ := EncryptMessage("same", pubB64)
	ct2, _ := EncryptMessage("same", pubB64)
	if ct1 == ct2 {
		t.Fatal("ciphertexts should differ for same plaintext")
	}

	pt1, _ := DecryptMessage(ct1, priv)
	pt2, _ := DecryptMessage(ct2, priv)
	if pt1 != "same" || pt2 != "same" {
		t.Fatal("both should decrypt to 'same'")
	}
}

func TestWrongKeyFails(t *testing.T) {
	_, priv, _ := ed25519.GenerateKey(rand.Reader)
	pubB64 := base64.StdEncoding.EncodeToString(priv.Public().(ed25519.PublicKey))

	ct, _ := EncryptMessage("secret", pubB64)

	_, wrongPriv, _ := ed25519.GenerateKey(rand.Reader)
	_, err := DecryptMessage(ct, wrongPriv)
	if err == nil {
		t.Fatal("expected error with wrong key")
	}
	if !ErrCrypto(err) {
		t.Fatalf("expected CryptoError, got %T", err)
	}
}

func TestTamperedCiphertext(t *testing.T) {
	_, priv, _ := ed25519.GenerateKey(rand.Reader)
	pubB64 := base64.StdEncoding.EncodeToString(priv.Public().(ed25519.PublicKey))

	ct, _ := EncryptMessage("secret", pubB64)
	wire, _ := base64.StdEncoding.DecodeString(ct)
	wire[len(wire)-1] ^= 0xFF
	tampered := base64.StdEncoding.EncodeToString(wire)

	_, err := DecryptMessage(tampered, priv)
	if err == nil {
		t.Fatal("expected error with tampered ciphertext")
	}
}

func TestTruncatedCiphertext(t *testing.T) {
	_, priv, _ := ed25519.GenerateKey(rand.Reader)
	short := base64.StdEncoding.EncodeToString(make([]byte, 30))

	_, err := DecryptMessage(short, priv)
	if err == nil {
		t.Fatal("expected error with truncated ciphertext")
	}
}

func TestEmptyPlaintext(t *testing.T) {
	_, priv, _ := ed25519.GenerateKey(rand.Reader)
	pubB64 := base64.StdEncoding.EncodeToString(priv.Public().(ed25519.PublicKey))

	ct, err := EncryptMessage("", pubB64)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := DecryptMessage(ct, priv)
	if err != nil {
		t.Fatal(err)
	}
	if pt != "" {
		t.Fatalf("expected empty string, got %q", pt)
	}
}

func TestUnicodePlaintext(t *testing.T) {
	_, priv, _ := ed25519.GenerateKey(rand.Reader)
	pubB64 := base64.StdEncoding.EncodeToString(priv.Public().(ed25519.PublicKey))

	msg := "status \U0001F980 日本語 ok"
	ct, err := EncryptMessage(msg, pubB64)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := DecryptMessage(ct, priv)
	if err != nil {
		t.Fatal(err)
	}
	if pt != msg {
		t.Fatalf("expected %q, got %q", msg, pt)
	}
}

func TestInvalidPublicKeyLength(t *testing.T) {
	_, err := EncryptMessage("test", base64.StdEncoding.EncodeToString(make([]byte, 16)))
	if err == nil {
		t.Fatal("expected error with wrong-length key")
	}
	if !ErrCrypto(err) {
		t.Fatalf("expected CryptoError, got %T", err)
	}
}

func TestLargeMessage(t *testing.T) {
	_, priv, _ := ed25519.GenerateKey(rand.Reader)
	pubB64 := base64.StdEncoding.EncodeToString(priv.Public().(ed25519.PublicKey))

	msg := make([]byte, 8000)
	for i := range msg {
		msg[i] = 'A'
	}
	ct, err := EncryptMessage(string(msg), pubB64)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := DecryptMessage(ct, priv)
	if err != nil {
		t.Fatal(err)
	}
	if pt != string(msg) {
		t.Fatal("large message round-trip failed")
	}
}

func TestBidirectional(t *testing.T) {
	_, crabPriv, _ := ed25519.GenerateKey(rand.Reader)
	crabPub := base64.StdEncoding.EncodeToString(crabPriv.Public().(ed25519.PublicKey))

	_, mantisPriv, _ := ed25519.GenerateKey(rand.Reader)
	mantisPub := base64.StdEncoding.EncodeToString(mantisPriv.Public().(ed25519.PublicKey))

	ct1, _ := EncryptMessage("построй индекс", mantisPub)
	pt1, err := DecryptMessage(ct1, mantisPriv)
	if err != nil || pt1 != "построй индекс" {
		t.Fatal("crab->mantis failed")
	}

	ct2, _ := EncryptMessage("index built", crabPub)
	pt2, err := DecryptMessage(ct2, crabPriv)
	if err != nil || pt2 != "index built" {
		t.Fatal("mantis->crab failed")
	}
}
