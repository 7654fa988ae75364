package noisim

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Program text format: one operation per line, angle parameters as numbers
// or rational multiples of pi, noise opcodes rendered as comments so a
// noisy stream stays loadable as its noise-free program.
//
//	qubits 3
//	HADAMARD q[0]
//	CNOT q[0], q[1]
//	RX(pi/2) q[2]
//	X q[1] dagger ctrl[0, 2]
//	# noise depolarizing 0.01 q[0]

// Pre-compiled regexps for program parsing. Angle tokens are validated by
// ParseAngle, not by the line regexps.
var (
	qubitsLineRegex = regexp.MustCompile(`^qubits\s+(\d+)$`)
	gateLineRegex   = regexp.MustCompile(`^(\w+)\s*(?:\(([^)]*)\))?` +
		`\s+q\[(\d+)\](?:\s*,\s*q\[(\d+)\](?:\s*,\s*q\[(\d+)\])?)?` +
		`(\s+dagger)?(?:\s+ctrl\[([0-9,\s]*)\])?$`)
	noiseLineRegex = regexp.MustCompile(`^#\s*noise\s+(\w+)\s+(\S+)` +
		`\s+q\[(\d+)\](?:\s*,\s*q\[(\d+)\](?:\s*,\s*q\[(\d+)\])?)?$`)
)

// ParseAngle evaluates one angle token: a plain float ("0.5", "3.14e-2")
// or a rational multiple of pi ("pi", "-pi/2", "3pi/4", "2*pi/3").
// Case and interior spaces are ignored.
func ParseAngle(tok string) (float64, error) {
	s := strings.ReplaceAll(strings.ToLower(tok), " ", "")
	if s == "" {
		return 0, fmt.Errorf("%w: empty token", ErrAngleSyntax)
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}

	sign := 1.0
	if s[0] == '+' || s[0] == '-' {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	num := s
	den := 1.0
	if i := strings.IndexByte(s, '/'); i >= 0 {
		num = s[:i]
		d, err := strconv.ParseFloat(s[i+1:], 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("%w: %q", ErrAngleSyntax, tok)
		}
		den = d
	}

	coeffStr, ok := strings.CutSuffix(num, "pi")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrAngleSyntax, tok)
	}
	coeffStr = strings.TrimSuffix(coeffStr, "*")
	coeff := 1.0
	if coeffStr != "" {
		c, err := strconv.ParseFloat(coeffStr, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrAngleSyntax, tok)
		}
		coeff = c
	}

	return sign * coeff * math.Pi / den, nil
}

// ParseAngleList evaluates a comma-separated list of angle tokens; empty
// fields are skipped.
func ParseAngleList(input string) ([]float64, error) {
	var angles []float64
	for _, field := range strings.Split(input, ",") {
		if strings.TrimSpace(field) == "" {
			continue
		}
		v, err := ParseAngle(field)
		if err != nil {
			return nil, err
		}
		angles = append(angles, v)
	}
	return angles, nil
}

// FormatAngle renders an angle, preferring an exact small rational
// multiple of pi ("pi/2", "-3*pi/4", "5*pi/6") over a decimal. Anything
// that is not such a multiple falls back to the shortest round-trippable
// decimal form.
func FormatAngle(val float64) string {
	turns := val / math.Pi
	for den := 1; den <= 12; den++ {
		scaled := turns * float64(den)
		num := math.Round(scaled)
		if num == 0 || math.Abs(num) > 24 {
			continue
		}
		if math.Abs(scaled-num) > 1e-9*float64(den) {
			continue
		}
		n := int(num)
		d := den
		if g := gcd(abs(n), d); g > 1 {
			n /= g
			d /= g
		}
		var sb strings.Builder
		if n < 0 {
			sb.WriteByte('-')
			n = -n
		}
		if n != 1 {
			fmt.Fprintf(&sb, "%d*", n)
		}
		sb.WriteString("pi")
		if d != 1 {
			fmt.Fprintf(&sb, "/%d", d)
		}
		return sb.String()
	}
	return strconv.FormatFloat(val, 'g', -1, 64)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// FormatProgram renders an opcode stream in the program text format.
func FormatProgram(numQubits int, ops []Opcode) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "qubits %d\n", numQubits)
	for _, op := range ops {
		if tag, ok := op.Noise(); ok {
			fmt.Fprintf(&sb, "# noise %s %s %s\n", tag, FormatAngle(op.Params[0]), formatQubits(op.Qubits))
			continue
		}
		tag, _ := op.Gate()
		sb.WriteString(tag.String())
		if len(op.Params) > 0 {
			parts := make([]string, len(op.Params))
			for i, p := range op.Params {
				parts[i] = FormatAngle(p)
			}
			fmt.Fprintf(&sb, "(%s)", strings.Join(parts, ", "))
		}
		sb.WriteString(" ")
		sb.WriteString(formatQubits(op.Qubits))
		if op.Dagger {
			sb.WriteString(" dagger")
		}
		if len(op.Controllers) > 0 {
			parts := make([]string, len(op.Controllers))
			for i, c := range op.Controllers {
				parts[i] = strconv.Itoa(c)
			}
			fmt.Fprintf(&sb, " ctrl[%s]", strings.Join(parts, ", "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatQubits(qubits []int) string {
	parts := make([]string, len(qubits))
	for i, q := range qubits {
		parts[i] = fmt.Sprintf("q[%d]", q)
	}
	return strings.Join(parts, ", ")
}

// ParseProgram parses program text back into an opcode stream. Noise
// comment lines become noise opcodes; other comments and blank lines are
// skipped.
func ParseProgram(text string) (numQubits int, ops []Opcode, err error) {
	for lineno, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if matches := qubitsLineRegex.FindStringSubmatch(line); matches != nil {
			numQubits, _ = strconv.Atoi(matches[1])
			continue
		}

		if matches := noiseLineRegex.FindStringSubmatch(line); matches != nil {
			tag, perr := ParseNoiseName(matches[1])
			if perr != nil {
				return 0, nil, fmt.Errorf("line %d: %w", lineno+1, perr)
			}
			p, perr := ParseAngle(matches[2])
			if perr != nil {
				return 0, nil, fmt.Errorf("line %d: %w", lineno+1, perr)
			}
			qubits := []int{mustAtoi(matches[3])}
			if matches[4] != "" {
				qubits = append(qubits, mustAtoi(matches[4]))
			}
			if matches[5] != "" {
				qubits = append(qubits, mustAtoi(matches[5]))
			}
			ops = append(ops, NoiseOp(tag, qubits, p))
			continue
		}

		if strings.HasPrefix(line, "#") {
			continue
		}

		matches := gateLineRegex.FindStringSubmatch(line)
		if matches == nil {
			return 0, nil, fmt.Errorf("line %d: %w: %q", lineno+1, ErrUnknownGate, line)
		}
		tag, perr := ParseGateName(matches[1])
		if perr != nil {
			return 0, nil, fmt.Errorf("line %d: %w", lineno+1, perr)
		}
		var params []float64
		if matches[2] != "" {
			params, perr = ParseAngleList(matches[2])
			if perr != nil {
				return 0, nil, fmt.Errorf("line %d: %w", lineno+1, perr)
			}
		}
		qubits := []int{mustAtoi(matches[3])}
		if matches[4] != "" {
			qubits = append(qubits, mustAtoi(matches[4]))
		}
		if matches[5] != "" {
			qubits = append(qubits, mustAtoi(matches[5]))
		}
		dagger := matches[6] != ""
		var controllers []int
		if matches[7] != "" {
			for _, part := range strings.Split(matches[7], ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				controllers = append(controllers, mustAtoi(part))
			}
		}
		ops = append(ops, GateOp(tag, qubits, params, dagger, controllers))
	}
	return numQubits, ops, nil
}

// mustAtoi converts regexp-validated digit groups.
func mustAtoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

// RecordProgram re-records the gate opcodes of a parsed program; noise
// opcodes are skipped because the simulator's own policy re-inserts them.
func (ns *NoisySimulator) RecordProgram(ops []Opcode) error {
	for i, op := range ops {
		if _, ok := op.Noise(); ok {
			continue
		}
		tag, ok := op.Gate()
		if !ok {
			return fmt.Errorf("op %d: %w: tag %d", i, ErrUnknownOpcode, op.Op)
		}
		if err := ns.recordOp(tag, op.Qubits, op.Params, op.Dagger, op.Controllers); err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
	}
	return nil
}
