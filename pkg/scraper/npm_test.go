package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNPMStrategy_CanHandle(t *testing.T) {
	n := &NPMStrategy{}
	assert.True(t, n.CanHandle("https://www.npmjs.com/package/lodash"))
	assert.True(t, n.CanHandle("https://npmjs.com/package/lodash"))
	assert.False(t, n.CanHandle("https://pypi.org/project/requests"))
}

func TestPyPIStrategy_CanHandle(t *testing.T) {
	p := &PyPIStrategy{}
	assert.True(t, p.CanHandle("https://pypi.org/project/requests"))
	assert.False(t, p.CanHandle("https://test.pypi.org/project/requests"))
}
