// Package netlist tokenizes and parses the SPICE-subset grammar into the
// device list and analysis commands the engine consumes.
package netlist

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/edp1096/mna-spice/pkg/device"
)

// DCParam is the single linear sweep .DC directive supports.
type DCParam struct {
	Source            string
	Start, Stop, Step float64
}

// TranParam is the .TRAN directive, written ".tran <tstop> <tstep>" (stop
// time first, then print step). The print step doubles as the adaptive
// controller's hard step-size cap.
type TranParam struct {
	TStop, TStep float64
}

// Circuit is the parsed netlist: every device plus at most one of each
// analysis command, run by the engine in the fixed order OP, DC, TRAN.
type Circuit struct {
	Title   string
	Devices []device.Stamp

	HasOP bool
	DC    *DCParam
	Tran  *TranParam
}

var unitMap = map[string]float64{
	"T":   1e12,
	"G":   1e9,
	"meg": 1e6,
	"M":   1e6,
	"K":   1e3,
	"k":   1e3,
	"h":   1e2,
	"da":  1e1,
	"d":   1e-1,
	"c":   1e-2,
	"m":   1e-3,
	"u":   1e-6,
	"n":   1e-9,
	"p":   1e-12,
	"f":   1e-15,
}

var valueRe = regexp.MustCompile(`^([-+]?\d*\.?\d+)(meg|da|[TGMKkhdcmunpf])?s?$`)

// ParseValue parses a SPICE numeric literal with an optional magnitude
// suffix, e.g. "1k" -> 1000, "2.2n" -> 2.2e-9.
func ParseValue(val string) (float64, error) {
	matches := valueRe.FindStringSubmatch(strings.TrimSpace(val))
	if matches == nil {
		return 0, fmt.Errorf("invalid value format: %s", val)
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, err
	}

	if matches[2] != "" {
		if mult, ok := unitMap[matches[2]]; ok {
			num *= mult
		}
	}
	return num, nil
}

// Parse reads a full netlist and returns its devices and commands.
func Parse(input string) (*Circuit, error) {
	scanner := bufio.NewScanner(strings.NewReader(input))
	ckt := &Circuit{}

	lineNo := 0
	if scanner.Scan() {
		lineNo++
		ckt.Title = strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "*"))
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "$") {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if err := parseCommand(ckt, line); err != nil {
				return nil, fmt.Errorf("netlist:%d: %w", lineNo, err)
			}
			continue
		}

		dev, err := parseDevice(line)
		if err != nil {
			return nil, fmt.Errorf("netlist:%d: %w", lineNo, err)
		}
		ckt.Devices = append(ckt.Devices, dev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("netlist: %w", err)
	}

	return ckt, nil
}

func parseCommand(ckt *Circuit, line string) error {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ".op":
		ckt.HasOP = true

	case ".dc":
		if len(fields) < 5 {
			return fmt.Errorf("insufficient .DC parameters")
		}
		start, err := ParseValue(fields[2])
		if err != nil {
			return fmt.Errorf("invalid .DC start: %w", err)
		}
		stop, err := ParseValue(fields[3])
		if err != nil {
			return fmt.Errorf("invalid .DC stop: %w", err)
		}
		step, err := ParseValue(fields[4])
		if err != nil {
			return fmt.Errorf("invalid .DC step: %w", err)
		}
		ckt.DC = &DCParam{Source: fields[1], Start: start, Stop: stop, Step: step}

	case ".tran":
		if len(fields) < 3 {
			return fmt.Errorf("insufficient .TRAN parameters")
		}
		tstop, err := ParseValue(fields[1])
		if err != nil {
			return fmt.Errorf("invalid .TRAN tstop: %w", err)
		}
		tstep, err := ParseValue(fields[2])
		if err != nil {
			return fmt.Errorf("invalid .TRAN tstep: %w", err)
		}
		ckt.Tran = &TranParam{TStep: tstep, TStop: tstop}

	default:
		return fmt.Errorf("unsupported directive: %s", fields[0])
	}
	return nil
}

func parseDevice(line string) (device.Stamp, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return nil, fmt.Errorf("invalid element format: %s", line)
	}
	name := fields[0]
	kind := strings.ToUpper(name[:1])

	switch kind {
	case "R":
		val, err := ParseValue(fields[len(fields)-1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return device.NewResistor(name, fields[1:3], val), nil

	case "L":
		val, err := ParseValue(fields[len(fields)-1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return device.NewInductor(name, fields[1:3], val), nil

	case "C":
		val, err := ParseValue(fields[len(fields)-1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return device.NewCapacitor(name, fields[1:3], val), nil

	case "D":
		return device.NewDiode(name, fields[1:3]), nil

	case "Q":
		if len(fields) < 4 {
			return nil, fmt.Errorf("%s: insufficient BJT terminals", name)
		}
		return device.NewBJT(name, fields[1:4]), nil

	case "M":
		if len(fields) < 4 {
			return nil, fmt.Errorf("%s: insufficient MOSFET terminals", name)
		}
		return device.NewMOSFET(name, fields[1:4]), nil

	case "V":
		val, fn, err := parseSourceTail(fields)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		// The line reads "Vname n+ n-"; NewVSource takes (neg, pos).
		return device.NewVSource(name, []string{fields[2], fields[1]}, val, fn), nil

	case "I":
		val, fn, err := parseSourceTail(fields)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return device.NewISource(name, fields[1:3], val, fn), nil

	default:
		return nil, fmt.Errorf("unsupported device type: %s", kind)
	}
}

// parseSourceTail parses the portion of a V/I line after the two terminal
// nodes: either a bare DC value, or a SIN/PULSE/EXP time-function call.
func parseSourceTail(fields []string) (float64, *device.TimeFunc, error) {
	if len(fields) < 4 {
		return 0, nil, fmt.Errorf("missing source value")
	}

	tail := strings.Join(fields[3:], " ")
	tail = strings.ReplaceAll(tail, "(", " ( ")
	tail = strings.ReplaceAll(tail, ")", " ) ")
	words := strings.Fields(tail)
	if len(words) == 0 {
		return 0, nil, fmt.Errorf("missing source value")
	}

	switch strings.ToUpper(words[0]) {
	case "SIN":
		params := stripParens(words[1:])
		if len(params) < 3 {
			return 0, nil, fmt.Errorf("insufficient SIN parameters")
		}
		offset, err := ParseValue(params[0])
		if err != nil {
			return 0, nil, fmt.Errorf("invalid SIN offset: %w", err)
		}
		amp, err := ParseValue(params[1])
		if err != nil {
			return 0, nil, fmt.Errorf("invalid SIN amplitude: %w", err)
		}
		freq, err := ParseValue(params[2])
		if err != nil {
			return 0, nil, fmt.Errorf("invalid SIN freq: %w", err)
		}
		return offset, &device.TimeFunc{Kind: device.TFSine, Sine: device.SineParams{Offset: offset, Amplitude: amp, Freq: freq}}, nil

	case "PULSE":
		params := stripParens(words[1:])
		if len(params) < 7 {
			return 0, nil, fmt.Errorf("insufficient PULSE parameters")
		}
		vals := make([]float64, 7)
		for i := range vals {
			v, err := ParseValue(params[i])
			if err != nil {
				return 0, nil, fmt.Errorf("invalid PULSE parameter %d: %w", i, err)
			}
			vals[i] = v
		}
		p := device.PulseParams{V1: vals[0], V2: vals[1], Delay: vals[2], TRise: vals[3], TFall: vals[4], PulseWidth: vals[5], Period: vals[6]}
		return p.V1, &device.TimeFunc{Kind: device.TFPulse, Pulse: p}, nil

	case "EXP":
		params := stripParens(words[1:])
		if len(params) < 6 {
			return 0, nil, fmt.Errorf("insufficient EXP parameters")
		}
		vals := make([]float64, 6)
		for i := range vals {
			v, err := ParseValue(params[i])
			if err != nil {
				return 0, nil, fmt.Errorf("invalid EXP parameter %d: %w", i, err)
			}
			vals[i] = v
		}
		e := device.ExpParams{V1: vals[0], V2: vals[1], RiseDelay: vals[2], RiseTau: vals[3], FallDelay: vals[4], FallTau: vals[5]}
		return e.V1, &device.TimeFunc{Kind: device.TFExp, Exp: e}, nil

	default:
		val, err := ParseValue(words[0])
		if err != nil {
			return 0, nil, fmt.Errorf("invalid source value: %w", err)
		}
		return val, nil, nil
	}
}

func stripParens(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "(" || w == ")" {
			continue
		}
		out = append(out, w)
	}
	return out
}
