package oled

import "fmt"

// testConn records command and data transactions instead of talking to
// hardware.
type testConn struct {
	ops    []testOp
	resets int
	closed bool
	err    error
}

type testOp struct {
	command bool
	bytes   []byte
}

func (c *testConn) String() string { return "testConn" }

func (c *testConn) Close() error {
	c.closed = true
	return nil
}

func (c *testConn) Reset() error {
	c.resets++
	return c.err
}

func (c *testConn) Command(cmnd byte, args ...byte) error {
	if c.err != nil {
		return c.err
	}
	c.ops = append(c.ops, testOp{command: true, bytes: append([]byte{cmnd}, args...)})
	return nil
}

func (c *testConn) Data(data ...byte) error {
	if c.err != nil {
		return c.err
	}
	c.ops = append(c.ops, testOp{bytes: append([]byte(nil), data...)})
	return nil
}

// clear drops the recorded transactions, typically after init.
func (c *testConn) clear() {
	c.ops = nil
	c.resets = 0
}

// dataOps returns the recorded data transactions.
func (c *testConn) dataOps() (ops [][]byte) {
	for _, op := range c.ops {
		if !op.command {
			ops = append(ops, op.bytes)
		}
	}
	return
}

// commandBefore returns the command transaction immediately preceding the
// i-th data transaction.
func (c *testConn) commandBefore(i int) ([]byte, error) {
	n := -1
	var last []byte
	for _, op := range c.ops {
		if op.command {
			last = op.bytes
			continue
		}
		if n++; n == i {
			return last, nil
		}
	}
	return nil, fmt.Errorf("no data transaction %d", i)
}

var _ Conn = &testConn{}
