// Package compress reads and writes compressed measurement files.
//
// Measurement files are large and highly repetitive text, so they are often
// stored compressed. Every codec here uses the algorithm's framed (streaming)
// format, which is what command-line tools such as zstd and lz4 produce, so a
// file written by one side can be read by the other.
//
// # Supported Algorithms
//
// **NoOp** (format.CompressionNone): plain text.
//
// **Zstandard** (format.CompressionZstd): best ratio, moderate speed.
// Built on github.com/klauspost/compress/zstd; building with the gozstd tag
// (and cgo) switches to the libzstd bindings from github.com/valyala/gozstd.
//
// **S2** (format.CompressionS2): Snappy-compatible framing from
// github.com/klauspost/compress/s2, fast in both directions. Snappy framed
// streams are also accepted by the reader.
//
// **LZ4** (format.CompressionLZ4): LZ4 frames from github.com/pierrec/lz4/v4,
// very fast decompression.
//
// # Usage
//
// Streaming, for the chunked aggregation strategy:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	rc, err := codec.NewReader(f)
//	if err != nil {
//	    return err
//	}
//	defer rc.Close()
//
// Whole buffer, for the strategies that need the full input in memory:
//
//	plain, err := codec.Decompress(compressed)
//
// Detect sniffs the magic bytes at the start of a stream when the compression
// type is not known in advance.
//
// # Thread Safety
//
// Codecs are stateless values and safe for concurrent use. Readers and
// writers returned by NewReader and NewWriter are not.
package compress
