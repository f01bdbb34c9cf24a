// Package codec provides the binary encoding layer for Brokkr containers.
//
// The codec package turns typed field values into their canonical byte
// sequences. Encodings are fixed by the container format and must match
// bit-for-bit across implementations:
//
//   - null: zero bytes
//   - boolean: one byte, 0x00 or 0x01
//   - int, long: zig-zag transform followed by a base-128 varint
//     (7 value bits per byte, low bits first, high bit set while more
//     bytes follow)
//   - float: 4 bytes IEEE-754, little-endian
//   - double: 8 bytes IEEE-754, little-endian
//   - bytes, string: zig-zag varint length prefix followed by the raw bytes
//
// Logical types layer domain meaning on top of a physical carrier:
//
//   - timestamp-millis: an instant carried as epoch milliseconds in a long
//   - decimal(precision, scale): a fixed-point number whose unscaled value
//     (value * 10^scale) is carried as the minimal-length two's-complement
//     big-endian byte sequence
//
// A record is the concatenation of its field encodings in schema-declared
// order, with no separators or padding. Readers need the same schema to
// find field boundaries; the container header carries it for that reason.
//
// Encoding never fails for well-formed values. Shape and range problems
// are rejected earlier, when raw input is coerced onto the schema.
package codec
