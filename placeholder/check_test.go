package placeholder

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpressionCheck(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		value   string
		wantBad string
	}{
		{name: "allowed", raw: "<+input>.allowedValues(dev,qa)", value: "qa"},
		{name: "not allowed", raw: "<+input>.allowedValues(dev,qa)", value: "prod", wantBad: `value "prod" is not one of the allowed values [dev,qa]`},
		{name: "regex match", raw: "<+input>.regex(svc-[a-z]+)", value: "svc-pay"},
		{name: "regex must match whole value", raw: "<+input>.regex(svc-[a-z]+)", value: "my-svc-pay", wantBad: `value "my-svc-pay" does not match pattern "svc-[a-z]+"`},
		{name: "alternation is anchored", raw: "<+input>.regex(a|b)", value: "ab", wantBad: `does not match`},
		{name: "both validators", raw: "<+input>.allowedValues(a1,b).regex([a-z]1)", value: "b", wantBad: "does not match"},
		{name: "no validators", raw: "<+input>.default(x)", value: "anything"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Default().Parse(tt.raw)
			require.NoError(t, err)

			violation, err := expr.Check(tt.value)
			require.NoError(t, err)
			if tt.wantBad == "" {
				assert.Nil(t, violation)
				return
			}
			require.NotNil(t, violation)
			assert.Contains(t, violation.Error(), tt.wantBad)
		})
	}
}

func TestCheckNilExpression(t *testing.T) {
	var expr *Expression
	violation, err := expr.Check("x")
	assert.NoError(t, err)
	assert.Nil(t, violation)
}

func TestCheckConcurrent(t *testing.T) {
	expr, err := Default().Parse("<+input>.allowedValues(a,b,c).regex([abc])")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, v := range []string{"a", "b", "c", "d"} {
				violation, err := expr.Check(v)
				assert.NoError(t, err)
				assert.Equal(t, v == "d", violation != nil)
			}
		}()
	}
	wg.Wait()
}
