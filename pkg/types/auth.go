package types

import "encoding/hex"

// ============================================================================
//                              ContractID
// ============================================================================

// ContractIDSize 合约实例地址长度
const ContractIDSize = 32

// ContractID 宿主上已部署合约实例的地址
type ContractID [ContractIDSize]byte

// EmptyContractID 空合约地址
var EmptyContractID ContractID

// ContractIDFromBytes 从字节切片创建 ContractID
func ContractIDFromBytes(b []byte) (ContractID, error) {
	var id ContractID
	if err := checkLength("contract id", ContractIDSize, b); err != nil {
		return id, err
	}
	copy(id[:], b)
	return id, nil
}

// ParseContractID 解析十六进制合约地址
func ParseContractID(s string) (ContractID, error) {
	b, err := decodeHex(s)
	if err != nil {
		return EmptyContractID, err
	}
	return ContractIDFromBytes(b)
}

// Bytes 返回字节切片
func (id ContractID) Bytes() []byte {
	return id[:]
}

// String 返回十六进制表示
func (id ContractID) String() string {
	return hex.EncodeToString(id[:])
}

// ShortString 返回前 8 个字符，用于日志
func (id ContractID) ShortString() string {
	return id.String()[:8]
}

// IsEmpty 检查是否为空
func (id ContractID) IsEmpty() bool {
	return id == EmptyContractID
}

// MarshalText 实现 encoding.TextMarshaler
func (id ContractID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (id *ContractID) UnmarshalText(text []byte) error {
	parsed, err := ParseContractID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ============================================================================
//                              AuthContext
// ============================================================================

// OperationKind 被授权操作的类型
type OperationKind uint8

const (
	// OperationContractCall 合约调用
	OperationContractCall OperationKind = iota
	// OperationCreateContract 创建合约
	OperationCreateContract
)

// String 返回操作类型名称
func (k OperationKind) String() string {
	switch k {
	case OperationContractCall:
		return "contract_call"
	case OperationCreateContract:
		return "create_contract"
	default:
		return "unknown"
	}
}

// Operation 单个被授权操作的描述
type Operation struct {
	// Kind 操作类型
	Kind OperationKind `json:"kind"`

	// Contract 目标合约
	Contract ContractID `json:"contract"`

	// Function 函数名
	Function string `json:"function"`

	// Args 已编码的参数
	Args [][]byte `json:"args,omitempty"`
}

// AuthContext 本次授权涉及的有序操作列表
//
// 单签名者策略不检查其内容，原样透传。
type AuthContext []Operation
