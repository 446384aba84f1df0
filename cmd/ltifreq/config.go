package main

import (
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/hammal/lti/freq"
	"github.com/hammal/lti/ssm"
	"github.com/hammal/lti/tf"
)

type rationalConfig struct {
	Num []float64 `yaml:"num"`
	Den []float64 `yaml:"den"`
}

// systemConfig is the YAML system definition. Either the state space
// matrices a/b/c/d (d alone for a static gain) or a transfer_function entry
// matrix must be given. ts follows the library convention: 0 continuous,
// -1 unspecified discrete, >0 discrete.
type systemConfig struct {
	Ts               float64            `yaml:"ts"`
	A                [][]float64        `yaml:"a"`
	B                [][]float64        `yaml:"b"`
	C                [][]float64        `yaml:"c"`
	D                [][]float64        `yaml:"d"`
	TransferFunction [][]rationalConfig `yaml:"transfer_function"`
}

func loadSystem(path string) (freq.System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg systemConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing system definition")
	}
	return cfg.build()
}

func (cfg systemConfig) build() (freq.System, error) {
	if cfg.TransferFunction != nil {
		m := make([][]tf.Rational, len(cfg.TransferFunction))
		for i, row := range cfg.TransferFunction {
			m[i] = make([]tf.Rational, len(row))
			for j, entry := range row {
				if len(entry.Den) == 0 {
					return nil, errors.Errorf("transfer function entry (%d,%d) has no denominator", i+1, j+1)
				}
				m[i][j] = tf.NewRational(entry.Num, entry.Den)
			}
		}
		return tf.NewTransferFunction(m, cfg.Ts), nil
	}

	D, err := denseOf("d", cfg.D)
	if err != nil {
		return nil, err
	}
	if cfg.A == nil {
		if D == nil {
			return nil, errors.New("system definition needs either state space matrices or transfer function entries")
		}
		return ssm.NewStaticGain(D, cfg.Ts), nil
	}
	A, err := denseOf("a", cfg.A)
	if err != nil {
		return nil, err
	}
	B, err := denseOf("b", cfg.B)
	if err != nil {
		return nil, err
	}
	C, err := denseOf("c", cfg.C)
	if err != nil {
		return nil, err
	}
	if B == nil || C == nil {
		return nil, errors.New("state space definition needs a, b and c matrices")
	}
	n, nA := A.Dims()
	nB, m := B.Dims()
	p, nC := C.Dims()
	if n != nA || nB != n || nC != n {
		return nil, errors.Errorf("state space dimensions don't match: a is %dx%d, b is %dx%d, c is %dx%d", n, nA, nB, m, p, nC)
	}
	if D != nil {
		pD, mD := D.Dims()
		if pD != p || mD != m {
			return nil, errors.Errorf("feedthrough is %dx%d, want %dx%d", pD, mD, p, m)
		}
	}
	return ssm.NewStateSpace(A, B, C, D, cfg.Ts), nil
}

func denseOf(name string, rows [][]float64) (*mat.Dense, error) {
	if rows == nil {
		return nil, nil
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Errorf("matrix %s is empty", name)
	}
	width := len(rows[0])
	data := make([]float64, 0, len(rows)*width)
	for _, row := range rows {
		if len(row) != width {
			return nil, errors.Errorf("matrix %s is ragged", name)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), width, data), nil
}
