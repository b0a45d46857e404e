package lints

import (
	"fmt"

	"github.com/sigopt/sigopt-tools/internal/pyast"
)

// DetectDatetimeNow flags dt.datetime.now() and datetime.datetime.utcnow()
// style calls, which produce naive or local timestamps.
func DetectDatetimeNow(n *pyast.Node) (bool, string) {
	if !isMethodCall(n, "now", "utcnow") {
		return false, ""
	}
	recv := n.Func.Value
	if !recv.Is(pyast.Attribute) || (recv.Ident != "dt" && recv.Ident != "datetime") {
		return false, ""
	}
	return true, fmt.Sprintf(
		"Prefer `current_datetime` to `datetime.%s` to ensure consistent use of UTC timezone", n.Func.Ident)
}

// DetectProtobufMethods flags calls to the protobuf MergeFrom and CopyFrom
// methods.
func DetectProtobufMethods(n *pyast.Node) (bool, string) {
	if !isMethodCall(n, "MergeFrom", "CopyFrom") {
		return false, ""
	}
	m := n.Func.Ident
	return true, fmt.Sprintf("Do not call `%s` on protobufs - prefer the safer `%s` in zigopt.protobuf.lib`", m, m)
}
