// Package variant implements a fixed-capacity tagged union, which holds
// exactly one value, from a closed set of alternative types, known at compile
// time. The set is a type argument, e.g. [Of3], and the value lives in a
// single shared storage region, alongside an integer tag.
//
// Values are accessed by type, using the generic functions [Get], [Holds],
// [Assign] and [Emplace]. Construction of a value may fail (see [Emplace]),
// in which case the variant is left invalid, if (and only if) the set
// contains at least one non-fundamental alternative. Sets consisting solely
// of fundamental (scalar) types can never become invalid. This is a weak
// guarantee: the previous value is not restored.
//
// The strategy used to release the active value (see [Destroyer]) is
// selectable, per instance, via [WithPolicy]. The default, [PolicyAuto],
// uses a per-set dispatch table only when nearly all the alternatives are
// non-trivial, see [WithAutoThreshold].
//
// A [Variant] must not be copied by assignment (go vet will flag it), use
// [Variant.CopyFrom], [Variant.MoveFrom], [Variant.Clone] or [Variant.Swap].
// It is not safe for concurrent use, see [Synchronized].
package variant
