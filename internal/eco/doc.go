// Package eco defines the population state type and the mutualistic
// Lotka-Volterra vector field with a Type II functional response.
package eco
