package composer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prismatik/showroom/engine/composer"
	"github.com/prismatik/showroom/engine/renderer/material"
)

func TestBlurKernelNormalized(t *testing.T) {
	for radius := 1; radius <= material.MaxBlurTaps-1; radius++ {
		weights, clamped := composer.BlurKernel(radius)
		assert.Equal(t, uint32(radius), clamped)

		// The shader mirrors taps 1..radius to both sides of center.
		sum := float64(weights[0])
		for i := 1; i <= radius; i++ {
			sum += 2 * float64(weights[i])
		}
		assert.InDelta(t, 1.0, sum, 1e-5, "radius %d", radius)
	}
}

func TestBlurKernelMonotonicFalloff(t *testing.T) {
	weights, _ := composer.BlurKernel(8)
	for i := 1; i <= 8; i++ {
		assert.Less(t, weights[i], weights[i-1], "tap %d should fall off", i)
	}
}

func TestBlurKernelClampsRadius(t *testing.T) {
	_, clamped := composer.BlurKernel(0)
	assert.Equal(t, uint32(1), clamped)

	_, clamped = composer.BlurKernel(-4)
	assert.Equal(t, uint32(1), clamped)

	weights, clamped := composer.BlurKernel(100)
	assert.Equal(t, uint32(material.MaxBlurTaps-1), clamped)
	assert.NotZero(t, weights[material.MaxBlurTaps-1])
}

func TestBlurKernelUnusedTapsAreZero(t *testing.T) {
	weights, _ := composer.BlurKernel(2)
	for i := 3; i < material.MaxBlurTaps; i++ {
		assert.Zero(t, weights[i])
	}
}
