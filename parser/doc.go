// Package parser turns a byte stream of KEY;VALUE\n records into (key, scaled
// value) pairs.
//
// # Record Format
//
// Each record is an opaque key, a ';', a temperature with exactly one
// fractional digit and a '\n':
//
//	Hamburg;12.0
//	Bulawayo;8.9
//	Palma;-1.5
//
// Values are converted to scaled integers (value x 10) without floating point:
// "12.0" becomes 120 and "-1.5" becomes -15.
//
// # Streaming
//
// Tokenizer is an explicit two-state machine (reading a key, reading a value).
// Feed accepts arbitrarily sized chunks; a token split across two chunks is
// kept in the tokenizer's accumulators until the rest arrives:
//
//	tok := parser.NewTokenizer()
//	defer tok.Release()
//	for {
//	    n, err := r.Read(buf)
//	    if err := tok.Feed(buf[:n], table); err != nil {
//	        return err
//	    }
//	    ...
//	}
//	err := tok.Close(table)
//
// When a whole token lies inside the chunk being fed, the sink receives a
// sub-slice of that chunk and no bytes are copied.
//
// # Whole Buffer
//
// Scan processes a buffer that holds the entire input (for example a memory
// mapped file) without any cross-chunk state. For the same input and options,
// Scan and Tokenizer deliver the same records to the sink.
//
// # Malformed Input
//
// The policy is selected with WithMalformedPolicy:
//   - format.MalformedAbort (default): return *errs.MalformedRecordError
//   - format.MalformedSkip: drop the record through its '\n' and count it
//   - format.MalformedUnchecked: no validation, malformed values parse to garbage
//
// Blank lines between records are ignored under every policy.
package parser
