// Package encryption chains the Speck128 block cipher in CBC mode.
// It owns padding, IV handling and the IV‖block₁‖…‖blockₙ wire format.
// There is no authentication: tampered ciphertext decrypts without error.
package encryption
