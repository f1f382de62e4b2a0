// Package subcipher implements a symmetric, byte-oriented substitution cipher
// engine. Encoding and decoding are exact inverses for every method in the
// catalog; none of the methods offers confidentiality against a real adversary.
//
// Components:
//   - method: closed catalog of reversible (encode, decode) byte functions
//     built from XOR with a key byte and rotation by a key-derived shift.
//   - keystream: applies one half of a pair across a payload, cycling the key.
//   - wire: NUL-safe framing; a transformed 0x00 becomes C0 80 and the output
//     is zero-terminated, so ciphertext survives C-string collaborators.
//   - Engine: resolves the current method through a binding policy
//     (global cell or per-call scope) and optionally writes the selection
//     through to a store.Store so it survives restart.
//
// Scoped binding:
//
//	ctx, end := subcipher.WithScope(ctx)
//	defer end()
//	_ = eng.Select(ctx, "usual")        // visible only inside this scope
//	ct, _ := eng.Encode(ctx, key, msg)
//
// Startup read-back (owning layer):
//
//	eng, _ := subcipher.New(subcipher.Options{Store: st})
//	_, _ = subcipher.Restore(ctx, eng, st)
package subcipher
