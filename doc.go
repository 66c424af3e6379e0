// Package bloom provides a pure-Go bloom post-processing pipeline for float32 RGBA images.
//
// Bright regions of a scene image are isolated with a soft luminance threshold,
// spread with a brightness-adaptive separable Gaussian blur, and blended back
// onto the scene with adaptive intensity and Reinhard tone mapping. Passes run
// row-parallel on the CPU; within a pass every output pixel is independent.
package bloom
