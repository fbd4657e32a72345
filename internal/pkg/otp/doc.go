// Package otp provides helpers for generating one-time passcodes (OTP).
//
// This is typically used for phone verification flows: generate a short
// numeric code, deliver it out of band, then compare the user-provided code
// against the stored hash.
package otp
