// Package lua loads calculator operations written in Lua.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. They define operations through the calc
// module:
//
//	calc.register{
//	    symbol = "hyp",
//	    description = "Hypotenuse",
//	    fn = function(a, b) return math.sqrt(a * a + b * b) end,
//	}
//
//	calc.register{
//	    symbol = "inv",
//	    description = "Reciprocal",
//	    unary = true,
//	    fn = function(a)
//	        if a == 0 then calc.divide_by_zero() end
//	        return 1 / a
//	    end,
//	}
//
// Each registered definition becomes an operation.Operation that can be
// added to a calculator like any built-in:
//
//	host := lua.NewHost(lua.WithTimeout(time.Second))
//	defer host.Close()
//
//	ops, err := host.LoadDir("plugins")
//	if err != nil {
//	    return err
//	}
//	for _, op := range ops {
//	    calc.Register(op)
//	}
//
// A State is not goroutine-safe; all calls must come from one goroutine.
package lua
