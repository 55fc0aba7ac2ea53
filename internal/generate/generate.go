// Package generate writes synthetic measurement files for benchmarks and
// tests: Name;-12.3 records drawn from a normal distribution around each
// station's mean temperature.
package generate

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/arloliu/brc/compress"
	"github.com/arloliu/brc/format"
	"github.com/arloliu/brc/internal/options"
)

// Station is a weather station and its mean temperature.
type Station struct {
	Name string
	Mean float64
}

// Stations is the built-in station list.
var Stations = []Station{
	{"Abha", 18.0}, {"Abidjan", 26.0}, {"Accra", 26.4}, {"Addis Ababa", 16.0},
	{"Adelaide", 17.3}, {"Alexandria", 20.0}, {"Amsterdam", 10.2}, {"Anchorage", 2.8},
	{"Athens", 19.2}, {"Baghdad", 22.77}, {"Bangkok", 28.6}, {"Barcelona", 18.2},
	{"Beijing", 12.9}, {"Berlin", 10.3}, {"Bogotá", 13.0}, {"Bridgetown", 27.0},
	{"Bulawayo", 18.9}, {"Cairo", 21.4}, {"Cape Town", 16.2}, {"Chicago", 9.8},
	{"Cracow", 9.3}, {"Dakar", 24.0}, {"Dhaka", 25.9}, {"Dubai", 26.9},
	{"Hamburg", 9.7}, {"Helsinki", 5.9}, {"Istanbul", 13.9}, {"Jakarta", 26.7},
	{"Lagos", 26.8}, {"Lima", 19.3}, {"London", 11.3}, {"Madrid", 15.0},
	{"Mexico City", 17.5}, {"Montreal", 6.8}, {"Moscow", 5.8}, {"Mumbai", 27.1},
	{"Nairobi", 17.8}, {"Oslo", 5.7}, {"Palembang", 27.3}, {"Palma", 17.7},
	{"Paris", 12.3}, {"Reykjavík", 4.3}, {"Rome", 15.2}, {"Santiago", 14.0},
	{"São Paulo", 19.7}, {"Seoul", 12.5}, {"Singapore", 27.0}, {"St. John's", 5.0},
	{"Stockholm", 6.6}, {"Sydney", 17.7}, {"Tokyo", 15.4}, {"Toronto", 9.4},
	{"Vancouver", 10.4}, {"Yakutsk", -8.8}, {"Zürich", 9.3},
}

// Config controls the generated file.
type Config struct {
	Records     int64
	Seed        uint64
	Stations    int     // number of stations drawn from; 0 uses all
	StdDev      float64 // spread around each station mean
	Compression format.CompressionType
}

// Option is a functional option for Write.
type Option = options.Option[*Config]

// Validate checks the settings.
func (c *Config) Validate() error {
	if c.Records < 0 {
		return fmt.Errorf("records must not be negative: %d", c.Records)
	}
	if c.Stations < 0 || c.Stations > len(Stations) {
		return fmt.Errorf("stations must be in [0, %d]: %d", len(Stations), c.Stations)
	}
	if c.StdDev < 0 {
		return fmt.Errorf("stddev must not be negative: %v", c.StdDev)
	}
	if c.Compression == format.CompressionAuto {
		return fmt.Errorf("output compression must be explicit")
	}
	if _, err := compress.GetCodec(c.Compression); err != nil {
		return err
	}

	return nil
}

// WithRecords sets the number of records. Default: 1000.
func WithRecords(n int64) Option {
	return options.NoError(func(c *Config) {
		c.Records = n
	})
}

// WithSeed fixes the random seed; equal seeds produce equal files.
func WithSeed(seed uint64) Option {
	return options.NoError(func(c *Config) {
		c.Seed = seed
	})
}

// WithStations limits the number of distinct stations.
func WithStations(n int) Option {
	return options.NoError(func(c *Config) {
		c.Stations = n
	})
}

// WithStdDev sets the spread of the values around each station mean. Default: 10.
func WithStdDev(d float64) Option {
	return options.NoError(func(c *Config) {
		c.StdDev = d
	})
}

// WithCompression compresses the output. Default: format.CompressionNone.
func WithCompression(ct format.CompressionType) Option {
	return options.NoError(func(c *Config) {
		c.Compression = ct
	})
}

// Write generates records into w and returns the uncompressed byte count.
func Write(w io.Writer, opts ...Option) (int64, error) {
	cfg := &Config{
		Records:     1000,
		Seed:        1,
		StdDev:      10,
		Compression: format.CompressionNone,
	}
	if err := options.ApplyAndValidate(cfg, opts...); err != nil {
		return 0, err
	}

	stations := Stations
	if cfg.Stations > 0 {
		stations = Stations[:cfg.Stations]
	}

	codec, err := compress.GetCodec(cfg.Compression)
	if err != nil {
		return 0, err
	}
	cw, err := codec.NewWriter(w)
	if err != nil {
		return 0, err
	}
	bw := bufio.NewWriterSize(cw, 256*1024)

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	line := make([]byte, 0, 64)
	var written int64
	for i := int64(0); i < cfg.Records; i++ {
		st := stations[rng.IntN(len(stations))]
		scaled := Scale(st.Mean + rng.NormFloat64()*cfg.StdDev)

		line = AppendRecord(line[:0], st.Name, scaled)
		n, err := bw.Write(line)
		written += int64(n)
		if err != nil {
			_ = cw.Close()
			return written, err
		}
	}

	if err := bw.Flush(); err != nil {
		_ = cw.Close()
		return written, err
	}

	return written, cw.Close()
}

// Scale rounds v to one decimal and clamps it to [-99.9, 99.9], returning
// the value x 10.
func Scale(v float64) int64 {
	s := int64(math.Round(v * 10))

	return max(-999, min(999, s))
}

// AppendRecord appends "name;value\n" for a scaled value.
func AppendRecord(dst []byte, name string, scaled int64) []byte {
	dst = append(dst, name...)
	dst = append(dst, ';')
	if scaled < 0 {
		dst = append(dst, '-')
		scaled = -scaled
	}
	dst = strconv.AppendInt(dst, scaled/10, 10)
	dst = append(dst, '.')
	dst = strconv.AppendInt(dst, scaled%10, 10)

	return append(dst, '\n')
}
