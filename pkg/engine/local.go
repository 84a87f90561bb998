package engine

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"math"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/openconfigurator/odconf-go/pkg/model"
	"github.com/openconfigurator/odconf-go/pkg/project"
)

// Local validates values against the entries of a model.Network and keeps
// the accepted values per node.
type Local struct {
	network *model.Network
	logger  *slog.Logger

	mu      sync.RWMutex
	applied map[appliedKey]string
}

type appliedKey struct {
	nodeID uint8
	key    project.Key
}

// NewLocal creates a Local validator over network. A nil logger uses
// slog.Default.
func NewLocal(network *model.Network, logger *slog.Logger) *Local {
	if logger == nil {
		logger = slog.Default()
	}
	return &Local{
		network: network,
		logger:  logger,
		applied: make(map[appliedKey]string),
	}
}

// ValidateAndApply implements Validator.
func (l *Local) ValidateAndApply(ctx context.Context, req Request) Result {
	if err := ctx.Err(); err != nil {
		return Fail(CodeCanceled, "%s", err)
	}
	if req.NetworkID != l.network.ID() {
		return Fail(CodeNetworkDoesNotExist, "Network %q does not exist", req.NetworkID)
	}

	e, err := l.network.Lookup(req.NodeID, req.Key())
	switch {
	case errors.Is(err, model.ErrNodeNotFound):
		return Fail(CodeNodeDoesNotExist, "Node %d does not exist", req.NodeID)
	case errors.Is(err, model.ErrEntryNotFound):
		if req.HasSubIndex {
			if _, lerr := l.network.Lookup(req.NodeID, project.ObjectKey(req.Index)); lerr == nil {
				return Fail(CodeSubObjectDoesNotExist, "Sub-object %s does not exist on node %d", req.Key(), req.NodeID)
			}
		}
		return Fail(CodeObjectDoesNotExist, "Object %s does not exist on node %d", req.Key(), req.NodeID)
	case err != nil:
		return Fail(CodeInternal, "%s", err)
	}

	if res := Check(e, req.Value); !res.Success() {
		l.logger.Debug("Value rejected", "request", req.String(), "code", res.Code.String())
		return res
	}

	l.mu.Lock()
	l.applied[appliedKey{nodeID: req.NodeID, key: req.Key()}] = req.Value
	l.mu.Unlock()
	return OK()
}

// Applied returns the last value accepted for the entry.
func (l *Local) Applied(nodeID uint8, key project.Key) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.applied[appliedKey{nodeID: nodeID, key: key}]
	return v, ok
}

// Check validates value against the data type, access type and limits of e.
func Check(e model.Entry, value string) Result {
	if !e.AccessType().CanWrite() {
		return Fail(CodeAccessViolation, "Object %s is not writable (access type %q)", e.Key(), e.AccessType().String())
	}

	code, ok := model.ParseDataType(e.DataType())
	if !ok {
		return Fail(CodeUnsupportedDataType, "Object %s has no valid data type", e.Key())
	}
	name := model.DataTypeName(code)
	v := strings.TrimSpace(value)

	switch {
	case code == model.DataTypeBoolean:
		if _, err := parseBool(v); err != nil {
			return Fail(CodeDataTypeMismatch, "Value %q is not a valid %s", value, name)
		}
		return OK()

	case model.IsUnsigned(code):
		bits := model.DataTypeBits(code)
		n, err := parseUnsigned(v, bits)
		if err != nil {
			return numberError(err, value, name)
		}
		return checkLimits(e, value, func(limit string) (int, bool) {
			l, err := parseUnsigned(limit, 64)
			if err != nil {
				return 0, false
			}
			return cmp.Compare(n, l), true
		})

	case model.IsSigned(code):
		bits := model.DataTypeBits(code)
		n, err := parseSigned(v, bits)
		if err != nil {
			return numberError(err, value, name)
		}
		return checkLimits(e, value, func(limit string) (int, bool) {
			l, err := parseSigned(limit, 64)
			if err != nil {
				return 0, false
			}
			return cmp.Compare(n, l), true
		})

	case model.IsReal(code):
		f, err := strconv.ParseFloat(v, model.DataTypeBits(code))
		if err != nil || math.IsNaN(f) {
			return numberError(err, value, name)
		}
		return checkLimits(e, value, func(limit string) (int, bool) {
			l, err := strconv.ParseFloat(strings.TrimSpace(limit), 64)
			if err != nil {
				return 0, false
			}
			return cmp.Compare(f, l), true
		})

	case code == model.DataTypeMACAddress:
		if _, err := net.ParseMAC(v); err != nil {
			return Fail(CodeDataTypeMismatch, "Value %q is not a valid %s", value, name)
		}
		return OK()

	case code == model.DataTypeIPAddress:
		if ip := net.ParseIP(v); ip == nil || ip.To4() == nil {
			return Fail(CodeDataTypeMismatch, "Value %q is not a valid %s", value, name)
		}
		return OK()

	case code == model.DataTypeVisibleString, code == model.DataTypeOctetString,
		code == model.DataTypeUnicodeString, code == model.DataTypeDomain:
		return OK()

	default:
		return Fail(CodeUnsupportedDataType, "Data type %q of %s is not supported", e.DataType(), e.Key())
	}
}

func checkLimits(e model.Entry, value string, compare func(limit string) (int, bool)) Result {
	if low := e.LowLimit(); low != "" {
		if c, ok := compare(low); ok && c < 0 {
			return Fail(CodeValueTooLow, "Value %s is below the low limit %s of %s", value, low, e.Key())
		}
	}
	if high := e.HighLimit(); high != "" {
		if c, ok := compare(high); ok && c > 0 {
			return Fail(CodeValueTooHigh, "Value %s exceeds the high limit %s of %s", value, high, e.Key())
		}
	}
	return OK()
}

func numberError(err error, value, typeName string) Result {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		return Fail(CodeValueOutOfRange, "Value %q does not fit %s", value, typeName)
	}
	return Fail(CodeDataTypeMismatch, "Value %q is not a valid %s", value, typeName)
}

// splitBase strips a 0x prefix and reports the base to parse the rest with.
func splitBase(s string) (string, int) {
	s = strings.TrimSpace(s)
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:], 16
	}
	return s, 10
}

func parseUnsigned(s string, bits int) (uint64, error) {
	digits, base := splitBase(s)
	return strconv.ParseUint(digits, base, bits)
}

func parseSigned(s string, bits int) (int64, error) {
	neg := strings.HasPrefix(strings.TrimSpace(s), "-")
	digits, base := splitBase(strings.TrimPrefix(strings.TrimSpace(s), "-"))
	if neg {
		digits = "-" + digits
	}
	return strconv.ParseInt(digits, base, bits)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "0x1", "0x01":
		return true, nil
	case "false", "0", "0x0", "0x00":
		return false, nil
	}
	return false, strconv.ErrSyntax
}
