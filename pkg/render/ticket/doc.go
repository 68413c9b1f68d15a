// Package ticket composes the front and back raster of a single ticket.
//
// A [Composer] is built once per run from immutable [Options] and is then a
// pure function of the ticket number: calling [Composer.Front] or
// [Composer.Back] twice with the same number yields identical pixels. It is
// safe to call from several goroutines.
//
// # Front
//
// The front is split into a stub on the left and the main body on the
// right. Drawing order:
//
//  1. stub background ([StubStyle])
//  2. main-body image ([ImagePolicy]: none, contain or cover)
//  3. event title, top-anchored, and "No. N" caption, bottom-anchored on an
//     opaque patch
//  4. the number, rotated, centered in the stub
//  5. border and perforation on top of everything
//
// # Back
//
// Title, a centered block of terms lines and a "Serial: N" caption, all in
// one color chosen by contrast with the background.
//
// # Contrast
//
// Text over a flat color is black or white depending on the relative
// luminance of that color, see [Luminance] and [Palette.TextColor].
package ticket
