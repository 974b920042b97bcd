package srarq

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type SenderTestSuite struct {
	suite.Suite
	net    *fakeNetwork
	timer  *fakeTimer
	sender *Sender
}

func (suite *SenderTestSuite) SetupTest() {
	suite.net = &fakeNetwork{}
	suite.timer = &fakeTimer{}
	suite.sender = NewSender(suite.net, suite.timer)
}

func (suite *SenderTestSuite) submit(letter byte) StatusCode {
	return suite.sender.Submit(makeMessage(letter))
}

func (suite *SenderTestSuite) submitN(n int) {
	for i := 0; i < n; i++ {
		suite.Equal(Success, suite.submit(byte('a'+i%26)))
	}
}

func (suite *SenderTestSuite) TestSubmitTransmitsWithNextSequence() {
	suite.submitN(3)
	suite.Len(suite.net.transmitted, 3)
	for i, p := range suite.net.transmitted {
		suite.Equal(i, p.SeqNum)
		suite.Equal(NotInUse, p.AckNum)
		suite.False(isCorrupted(p))
	}
	suite.Equal(3, suite.sender.InFlight())
	suite.Equal(3, suite.sender.Stats().Sent)
}

func (suite *SenderTestSuite) TestTimerStartsOnlyForFirstInFlight() {
	suite.submitN(3)
	suite.Equal(1, suite.timer.starts)
	suite.True(suite.timer.running)
}

func (suite *SenderTestSuite) TestWindowFullRejectsWithoutQueueing() {
	suite.submitN(WindowSize)
	suite.Equal(WindowFull, suite.submit('z'))
	suite.Len(suite.net.transmitted, WindowSize)
	suite.Equal(1, suite.sender.Stats().WindowFull)
	suite.Equal(WindowSize, suite.sender.InFlight())

	// an ack for base reopens exactly one slot
	suite.Equal(Success, suite.sender.OnAck(makeAckPacket(0)))
	suite.Equal(Success, suite.submit('z'))
	suite.Equal(WindowSize, suite.net.last().SeqNum)
}

func (suite *SenderTestSuite) TestAckForBaseSlidesAndRestartsTimer() {
	suite.submitN(3)
	suite.Equal(Success, suite.sender.OnAck(makeAckPacket(0)))
	suite.Equal(2, suite.sender.InFlight())
	suite.Equal(1, suite.timer.stops)
	suite.Equal(2, suite.timer.starts)
	suite.True(suite.timer.running)
}

func (suite *SenderTestSuite) TestAckAboveBaseHoldsBase() {
	suite.submitN(3)
	suite.Equal(Success, suite.sender.OnAck(makeAckPacket(1)))
	suite.Equal(3, suite.sender.InFlight())
	suite.Equal(0, suite.timer.stops)

	// the ack for base slides over both acknowledged slots
	suite.Equal(Success, suite.sender.OnAck(makeAckPacket(0)))
	suite.Equal(1, suite.sender.InFlight())
}

func (suite *SenderTestSuite) TestLastAckStopsTimer() {
	suite.submitN(1)
	suite.Equal(Success, suite.sender.OnAck(makeAckPacket(0)))
	suite.Equal(0, suite.sender.InFlight())
	suite.False(suite.timer.running)
}

func (suite *SenderTestSuite) TestCorruptedAckIsIgnored() {
	suite.submitN(2)
	suite.Equal(Corrupted, suite.sender.OnAck(corruptChecksum(makeAckPacket(0))))
	suite.Equal(2, suite.sender.InFlight())
	suite.Equal(1, suite.sender.Stats().CorruptedAcks)
	suite.Equal(0, suite.sender.Stats().AcksReceived)
}

func (suite *SenderTestSuite) TestDuplicateAckCountsOnce() {
	suite.submitN(2)
	suite.Equal(Success, suite.sender.OnAck(makeAckPacket(1)))
	suite.Equal(DuplicateAck, suite.sender.OnAck(makeAckPacket(1)))
	stats := suite.sender.Stats()
	suite.Equal(1, stats.NewAcks)
	suite.Equal(1, stats.DuplicateAcks)
	suite.Equal(2, stats.AcksReceived)
	suite.Equal(2, suite.sender.InFlight())
}

func (suite *SenderTestSuite) TestStaleAckIsIgnored() {
	suite.submitN(2)
	suite.Equal(StaleAck, suite.sender.OnAck(makeAckPacket(9)))
	suite.Equal(2, suite.sender.InFlight())
	suite.Equal(1, suite.sender.Stats().StaleAcks)
}

func (suite *SenderTestSuite) TestDataPacketHandedAsAckIsStale() {
	// wrap the window to base 14, next 2 so a NotInUse acknum would index
	// below the flag array without the range check
	for i := 0; i < 14; i++ {
		suite.Equal(Success, suite.submit('a'))
		suite.Equal(Success, suite.sender.OnAck(makeAckPacket(i)))
	}
	suite.submitN(4)

	suite.Equal(StaleAck, suite.sender.OnAck(makeDataPacket(0, fillPayload('x'))))
	suite.Equal(4, suite.sender.InFlight())
	suite.Equal(1, suite.sender.Stats().StaleAcks)
}

func (suite *SenderTestSuite) TestTimeoutResendsOnlyOldest() {
	suite.submitN(3)
	suite.net.reset()
	suite.sender.OnTimeout()
	suite.Len(suite.net.transmitted, 1)
	suite.Equal(0, suite.net.transmitted[0].SeqNum)
	suite.Equal(1, suite.sender.Stats().Resent)
	suite.Equal(2, suite.timer.starts)
}

func (suite *SenderTestSuite) TestTimeoutOnEmptyWindowDoesNothing() {
	suite.sender.OnTimeout()
	suite.Empty(suite.net.transmitted)
	suite.Equal(0, suite.timer.starts)
	suite.Equal(0, suite.sender.Stats().Resent)
}

func (suite *SenderTestSuite) TestWindowWrapsAroundSequenceSpace() {
	for i := 0; i < SeqSpace+4; i++ {
		suite.Equal(Success, suite.submit('a'))
		seq := i % SeqSpace
		suite.Equal(seq, suite.net.last().SeqNum)
		suite.Equal(Success, suite.sender.OnAck(makeAckPacket(seq)))
	}
	suite.Equal(0, suite.sender.InFlight())
}

func (suite *SenderTestSuite) TestLossRecoveryScript() {
	// three submissions go out as 0, 1, 2 and arm the timer once
	suite.submitN(3)
	suite.Len(suite.net.transmitted, 3)
	suite.Equal(1, suite.timer.starts)

	// a clean ack for 0 slides base and rearms the timer
	suite.Equal(Success, suite.sender.OnAck(makeAckPacket(0)))
	suite.Equal(2, suite.sender.InFlight())
	suite.True(suite.timer.running)

	// the ack for 1 arrives corrupted and changes nothing
	suite.Equal(Corrupted, suite.sender.OnAck(corruptChecksum(makeAckPacket(1))))
	suite.Equal(2, suite.sender.InFlight())

	// the timeout resends packet 1 and nothing else
	suite.net.reset()
	suite.sender.OnTimeout()
	suite.Len(suite.net.transmitted, 1)
	suite.Equal(1, suite.net.transmitted[0].SeqNum)

	// acks for 1 and 2 empty the window and stop the timer
	suite.Equal(Success, suite.sender.OnAck(makeAckPacket(1)))
	suite.Equal(Success, suite.sender.OnAck(makeAckPacket(2)))
	suite.Equal(0, suite.sender.InFlight())
	suite.False(suite.timer.running)
}

func TestSender(t *testing.T) {
	suite.Run(t, new(SenderTestSuite))
}
