package account

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-ethaccount/pkg/interfaces"
	"github.com/dep2p/go-ethaccount/pkg/lib/crypto"
	"github.com/dep2p/go-ethaccount/pkg/types"
)

// 固定测试向量（由独立实现计算）
const (
	scenarioPayload = "eb5afeca2ffd697329dc3454f38df97b2ce104819a1e523e388a96fb9d41a10d"
	scenarioDigest  = "3979b35536a29e8c3026153dc4c1c34636a4b9008992cbb5de41f0224797dc85"

	signerPriv = "21b217d03692d462a5a55509a0eddc8bf090dc2a6e3769b2299201a70aa05815"
	signerAddr = "0x89ddc328b4032687cae387be35941c7a68e58da5"
	signerSig  = "abe9fd9b104ae41203e6233a6b24a4ddfbfd187437449c5317139b553a2d3bd4514293761dbf4bdaa474f02d7489e120827f0c662bf4aa2e0086d9aa9369fda11c"

	otherAddr = "0xb76b7c37b32133ab0e7ce3a14cd5cfca4e8a5e55"
	otherSig  = "19014be8e8ce0e8e68e7ba17c681207db10a6a61d585cf9896174f785bc4a52175c5adaf627a52da81e73ef65056ab9abebc0079f9e87144307ef99557fe3acf1c"

	testMaxTTL = 3110399
)

var errHostDown = errors.New("host unavailable")

// ============================================================================
//                              假宿主
// ============================================================================

type countingRecoverer struct {
	calls int
	inner crypto.Secp256k1Recoverer
}

func (r *countingRecoverer) Secp256k1Recover(digest types.Hash, sig [types.CoreSignatureSize]byte, parity uint8) (types.PublicKey, error) {
	r.calls++
	return r.inner.Secp256k1Recover(digest, sig, parity)
}

type fakeStorage struct {
	data   map[string][]byte
	ttl    map[string]uint32
	max    uint32
	setErr error
	getErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		data: make(map[string][]byte),
		ttl:  make(map[string]uint32),
		max:  testMaxTTL,
	}
}

func (s *fakeStorage) Get(key []byte) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.data[string(key)]
	if !ok {
		return nil, errors.New("missing entry")
	}
	return append([]byte(nil), v...), nil
}

func (s *fakeStorage) Set(key, value []byte) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.data[string(key)] = append([]byte(nil), value...)
	if _, ok := s.ttl[string(key)]; !ok {
		s.ttl[string(key)] = 100
	}
	return nil
}

func (s *fakeStorage) Has(key []byte) (bool, error) {
	if s.getErr != nil {
		return false, s.getErr
	}
	_, ok := s.data[string(key)]
	return ok, nil
}

func (s *fakeStorage) ExtendTTL(key []byte, threshold, extendTo uint32) error {
	cur, ok := s.ttl[string(key)]
	if !ok {
		return errors.New("missing entry")
	}
	s.ttl[string(key)] = extend(cur, threshold, extendTo, s.max)
	return nil
}

func (s *fakeStorage) MaxTTL() uint32 { return s.max }

type fakeDeployer struct {
	deployment, code, instance uint32
	max                        uint32
	err                        error
}

func (d *fakeDeployer) ExtendDeploymentTTL(_ types.ContractID, threshold, extendTo uint32) error {
	if d.err != nil {
		return d.err
	}
	d.deployment = extend(d.deployment, threshold, extendTo, d.max)
	return nil
}

func (d *fakeDeployer) ExtendCodeTTL(_ types.ContractID, threshold, extendTo uint32) error {
	d.code = extend(d.code, threshold, extendTo, d.max)
	return nil
}

func (d *fakeDeployer) ExtendInstanceTTL(_ types.ContractID, threshold, extendTo uint32) error {
	d.instance = extend(d.instance, threshold, extendTo, d.max)
	return nil
}

func extend(cur, threshold, extendTo, limit uint32) uint32 {
	if cur >= threshold {
		return cur
	}
	if extendTo > limit {
		extendTo = limit
	}
	if extendTo > cur {
		return extendTo
	}
	return cur
}

type fakeEnv struct {
	crypto.Keccak256Hasher
	*countingRecoverer

	storage  *fakeStorage
	deployer *fakeDeployer
	contract types.ContractID
}

var _ interfaces.Env = (*fakeEnv)(nil)

func newFakeEnv() *fakeEnv {
	return &fakeEnv{
		countingRecoverer: &countingRecoverer{},
		storage:           newFakeStorage(),
		deployer:          &fakeDeployer{deployment: 10, code: 10, instance: 10, max: testMaxTTL},
		contract:          types.ContractID{0xca, 0xfe},
	}
}

func (e *fakeEnv) Storage() interfaces.Storage { return e.storage }
func (e *fakeEnv) Deployer() interfaces.Deployer { return e.deployer }
func (e *fakeEnv) CurrentContract() types.ContractID { return e.contract }

// ============================================================================
//                              辅助函数
// ============================================================================

func mustHash(t *testing.T, s string) types.Hash {
	t.Helper()
	h, err := types.ParseHash(s)
	require.NoError(t, err)
	return h
}

func mustIdentity(t *testing.T, s string) types.Identity {
	t.Helper()
	id, err := types.ParseIdentity(s)
	require.NoError(t, err)
	return id
}

func mustSignature(t *testing.T, s string) types.RecoverableSignature {
	t.Helper()
	sig, err := types.ParseSignature(s)
	require.NoError(t, err)
	return sig
}

func scenarioClaim(t *testing.T) types.SignedClaim {
	return types.SignedClaim{
		Identity:  mustIdentity(t, signerAddr),
		Signature: mustSignature(t, signerSig),
	}
}

func transferContext() types.AuthContext {
	return types.AuthContext{{
		Kind:     types.OperationContractCall,
		Contract: types.ContractID{0x70, 0x6b},
		Function: "transfer",
		Args:     [][]byte{[]byte("from"), []byte("to"), {0x01, 0xf4}},
	}}
}
