// Command kcsmodem encodes text to Kansas City Standard audio and
// decodes it back, mirroring kcs.c's -e/-d command-line contract.
// For more info, see: http://en.wikipedia.org/wiki/Kansas_City_standard
package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jsh6789/kcsmodem/internal/config"
	"github.com/jsh6789/kcsmodem/internal/diagnostics"
	"github.com/jsh6789/kcsmodem/internal/frame"
	"github.com/jsh6789/kcsmodem/internal/params"
	"github.com/jsh6789/kcsmodem/internal/stream"
	"github.com/jsh6789/kcsmodem/internal/wavio"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("kcsmodem", pflag.ContinueOnError)

	encode := fs.BoolP("encode", "e", false, "Encode text to KCS audio (default)")
	decode := fs.BoolP("decode", "d", false, "Decode KCS audio to text")
	amplitude := fs.Float64P("amplitude", "a", params.DefaultAmplitude, "Amplitude, for encoding")
	squelch := fs.Float64P("squelch", "s", params.DefaultSquelch, "Squelch, for decoding")
	leader := fs.Float64P("leader", "l", params.DefaultLeaderSecs, "Length of leader in seconds")
	trailer := fs.Float64P("trailer", "t", params.DefaultTrailerSecs, "Length of trailer in seconds")
	nullPulse := fs.BoolP("null-pulse", "n", false, "Emit null-pulse cycles after each newline")
	waveShape := fs.StringP("wave", "w", "sine", "Wave shape: sine or square")
	profilePath := fs.String("profile", "", "YAML parameter profile (overrides the flags above)")
	container := fs.StringP("container", "c", "wav", "Audio container: wav or raw (headerless 16-bit PCM)")
	inPath := fs.String("in", "", "Input file (default: stdin)")
	outPath := fs.String("out", "", "Output file (default: stdout)")
	showDiagnostics := fs.Bool("diagnostics", false, "Log per-window amplitude statistics while decoding")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "USAGE\n")
		fmt.Fprintf(os.Stderr, "  kcsmodem -e [--in text.txt] [--out out.wav] [flags]\n")
		fmt.Fprintf(os.Stderr, "  kcsmodem -d [--in in.wav] [--out text.txt] [flags]\n")
		fmt.Fprintf(os.Stderr, "SUMMARY\n  Encodes text to KCS audio and vice versa.\n")
		fmt.Fprintf(os.Stderr, "FLAGS\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *encode && *decode {
		fmt.Fprintln(os.Stderr, "Cannot encode AND decode!")
		fs.Usage()
		return 2
	}

	p, err := resolveParams(*profilePath, *amplitude, *squelch, *leader, *trailer, *nullPulse, *waveShape)
	if err != nil {
		log.Printf("Error resolving parameters: %v", err)
		return 1
	}

	in, closeIn, err := openInput(*inPath)
	if err != nil {
		log.Printf("Error opening input: %v", err)
		return 1
	}
	defer closeIn()

	out, closeOut, err := openOutput(*outPath)
	if err != nil {
		log.Printf("Error opening output: %v", err)
		return 1
	}
	defer closeOut()

	switch {
	case *decode:
		err = runDecode(p, in, out, *container, *showDiagnostics)
	default:
		err = runEncode(p, in, out, *container)
	}
	if err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	return 0
}

func resolveParams(profilePath string, amplitude, squelch, leader, trailer float64, nullPulse bool, wave string) (params.Params, error) {
	if profilePath != "" {
		return config.Load(profilePath)
	}

	p := params.Standard()
	p.Amplitude = amplitude
	p.Squelch = squelch
	p.LeaderSecs = leader
	p.TrailerSecs = trailer
	p.Waveform = params.ParseWaveform(wave)
	if nullPulse {
		p.NullCycles = params.DefaultNullCycles
	}
	return p.Clipped(), nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, func() {}, err
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, func() {}, err
	}
	return f, func() { f.Close() }, nil
}

func runEncode(p params.Params, in io.Reader, out *os.File, container string) error {
	enc := frame.NewEncoder(p)
	src := readerByteSource{r: in}

	switch container {
	case "raw":
		dst := rawSampleWriter{w: out}
		return enc.EncodeStream(src, dst)
	default:
		w := wavio.NewWriter(out, p.Framerate)
		if err := enc.EncodeStream(src, w); err != nil {
			return err
		}
		return w.Close()
	}
}

func runDecode(p params.Params, in io.Reader, out *os.File, container string, showDiagnostics bool) error {
	var src interface {
		ReadSamples(buf []int16) (int, error)
	}

	bufferSize := p.StreamBufferSize()
	switch container {
	case "raw":
		src = rawSampleReader{r: in}
		bufferSize = params.RawBufferSize
	default:
		rs, ok := in.(io.ReadSeeker)
		if !ok {
			return fmt.Errorf("kcsmodem: --container=wav requires a seekable input file, not stdin")
		}
		r, err := wavio.NewReader(rs)
		if err != nil {
			return err
		}
		src = r
	}

	dst := writerByteSink{w: out}
	driver := stream.NewDriver(p, bufferSize)
	if showDiagnostics {
		driver.OnBlock(func(stats diagnostics.BlockStats) {
			log.Printf("block: mean=%.1f stddev=%.1f peak=%d rms=%.1f", stats.Mean, stats.StdDev, stats.Peak, stats.RMS)
		})
	}
	return driver.Run(src, dst)
}

// readerByteSource adapts an io.Reader to ports.ByteSource.
type readerByteSource struct{ r io.Reader }

func (s readerByteSource) ReadBytes(buf []byte) (int, error) {
	return s.r.Read(buf)
}

// writerByteSink adapts an io.Writer to ports.ByteSink.
type writerByteSink struct{ w io.Writer }

func (s writerByteSink) WriteBytes(data []byte) error {
	_, err := s.w.Write(data)
	return err
}

// rawSampleWriter writes headerless little-endian 16-bit PCM, for use
// in place of a sound-card backend or a container codec.
type rawSampleWriter struct{ w io.Writer }

func (s rawSampleWriter) WriteSamples(samples []int16) error {
	buf := make([]byte, 2*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(v))
	}
	_, err := s.w.Write(buf)
	return err
}

// rawSampleReader reads headerless little-endian 16-bit PCM.
type rawSampleReader struct{ r io.Reader }

func (s rawSampleReader) ReadSamples(buf []int16) (int, error) {
	raw := make([]byte, 2*len(buf))
	n, err := io.ReadFull(s.r, raw)
	samples := n / 2
	for i := 0; i < samples; i++ {
		buf[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
	}
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return samples, err
}
